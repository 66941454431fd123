package middleware

import (
    "context"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/saniya-gs/health-recommendation-system/internal/model"
    "github.com/saniya-gs/health-recommendation-system/internal/repository"
    "github.com/saniya-gs/health-recommendation-system/internal/utils"
)

// SessionCookieName is the cookie carrying the signed session.
const SessionCookieName = "health_session"

// SessionHeader is an alternative to the bearer header for raw tokens.
const SessionHeader = "X-Session-Token"

// SessionStore is the subset of the session repository the middleware needs.
type SessionStore interface {
    FindByToken(ctx context.Context, token string) (model.Session, error)
    Delete(ctx context.Context, userID uint64, token string) error
}

// Credentials extracts the session identity sent by the client.  The
// signed cookie yields both user ID and token; a raw token from the
// Authorization bearer or X-Session-Token header yields the token only
// (userID 0).  ok is false when nothing usable was sent.
func Credentials(c echo.Context, secret string) (userID uint64, token string, ok bool) {
    if ck, err := c.Cookie(SessionCookieName); err == nil && ck.Value != "" {
        if uid, tok, err := utils.ParseSessionCookie(secret, ck.Value); err == nil {
            return uid, tok, true
        }
    }
    if auth := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
        if tok := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")); tok != "" {
            return 0, tok, true
        }
    }
    if tok := strings.TrimSpace(c.Request().Header.Get(SessionHeader)); tok != "" {
        return 0, tok, true
    }
    return 0, "", false
}

// RequireSession rejects requests without a live session with 401
// {"error":"Not authenticated"}.  A session is live when its row exists,
// belongs to the user named by the cookie (if any) and has not expired.
// Expired rows are deleted on sight.
func RequireSession(store SessionStore, secret string, log *zap.Logger) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            uid, token, ok := Credentials(c, secret)
            if !ok {
                return notAuthenticated(c)
            }

            ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
            defer cancel()

            s, err := store.FindByToken(ctx, token)
            if err != nil {
                if !errors.Is(err, repository.ErrSessionNotFound) {
                    log.Error("session lookup failed", zap.Error(err))
                }
                return notAuthenticated(c)
            }
            if uid != 0 && uid != s.UserID {
                return notAuthenticated(c)
            }
            if s.Expired(time.Now().UTC()) {
                if err := store.Delete(ctx, s.UserID, s.Token); err != nil {
                    log.Warn("delete expired session failed", zap.Error(err))
                }
                return notAuthenticated(c)
            }

            c.Set(ContextUserID, s.UserID)
            c.Set(ContextSessionToken, s.Token)
            return next(c)
        }
    }
}

func notAuthenticated(c echo.Context) error {
    return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not authenticated"})
}
