package handler

import (
    "context"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/saniya-gs/health-recommendation-system/internal/config"
    "github.com/saniya-gs/health-recommendation-system/internal/middleware"
    "github.com/saniya-gs/health-recommendation-system/internal/repository"
    "github.com/saniya-gs/health-recommendation-system/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
    Cfg      config.Config
    Users    *repository.UserRepo
    Sessions *repository.SessionRepo
    Log      *zap.Logger
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, s *repository.SessionRepo, log *zap.Logger) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Users: u, Sessions: s, Log: log}
}

// ----- DTOs -----

type registerReq struct {
    Username string `json:"username" validate:"required,max=80"`
    Email    string `json:"email" validate:"required,max=191"`
    Password string `json:"password" validate:"required"`
}

type loginReq struct {
    Username string `json:"username"`
    Password string `json:"password"`
}

// Register creates an account.  It does not log the user in.
func (h *AuthHandler) Register(c echo.Context) error {
    var req registerReq
    if err := decodeJSON(c, &req); err != nil {
        return invalidBody(c)
    }
    req.Username = strings.TrimSpace(req.Username)
    req.Email = strings.TrimSpace(req.Email)
    if err := c.Validate(&req); err != nil {
        return errorJSON(c, http.StatusBadRequest, "Missing required fields")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    exists, err := h.Users.Exists(ctx, req.Username, req.Email)
    if err != nil {
        h.Log.Error("register: lookup failed", zap.Error(err))
        return errorJSON(c, http.StatusInternalServerError, "could not create user")
    }
    if exists {
        return errorJSON(c, http.StatusBadRequest, "User already exists")
    }
    if _, err := h.Users.Create(ctx, req.Username, req.Email, req.Password, h.Cfg.BcryptCost); err != nil {
        if errors.Is(err, repository.ErrUserExists) {
            return errorJSON(c, http.StatusBadRequest, "User already exists")
        }
        h.Log.Error("register: insert failed", zap.Error(err))
        return errorJSON(c, http.StatusInternalServerError, "could not create user")
    }
    return c.JSON(http.StatusCreated, echo.Map{"message": "User created successfully"})
}

// Login verifies credentials, opens a session row and returns its token.
// The same session is also set as a signed cookie.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := decodeJSON(c, &req); err != nil {
        return invalidBody(c)
    }
    username := strings.TrimSpace(req.Username)
    if username == "" || req.Password == "" {
        return errorJSON(c, http.StatusUnauthorized, "Invalid credentials")
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.GetByUsername(ctx, username)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return errorJSON(c, http.StatusUnauthorized, "Invalid credentials")
        }
        h.Log.Error("login: lookup failed", zap.Error(err))
        return errorJSON(c, http.StatusInternalServerError, "login failed")
    }
    if !utils.VerifyPassword(u.PasswordHash, req.Password) {
        return errorJSON(c, http.StatusUnauthorized, "Invalid credentials")
    }

    token := utils.NewSessionToken()
    exp := time.Now().UTC().Add(h.Cfg.SessionTTL)
    if err := h.Sessions.Create(ctx, u.ID, token, exp); err != nil {
        h.Log.Error("login: save session failed", zap.Error(err), zap.Uint64("user_id", u.ID))
        return errorJSON(c, http.StatusInternalServerError, "login failed")
    }
    signed, err := utils.SignSessionCookie(h.Cfg.SessionSecret, u.ID, token, exp)
    if err != nil {
        h.Log.Error("login: sign cookie failed", zap.Error(err))
        return errorJSON(c, http.StatusInternalServerError, "login failed")
    }
    c.SetCookie(h.sessionCookie(signed, exp))

    return c.JSON(http.StatusOK, echo.Map{
        "message":       "Login successful",
        "session_token": token,
    })
}

// Logout deletes the caller's session if one is identified and always
// clears the cookie.  Store errors are logged, never returned.
func (h *AuthHandler) Logout(c echo.Context) error {
    uid, token, ok := middleware.Credentials(c, h.Cfg.SessionSecret)
    if ok {
        ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
        defer cancel()
        if uid == 0 {
            if s, err := h.Sessions.FindByToken(ctx, token); err == nil {
                uid = s.UserID
            }
        }
        if uid != 0 {
            if err := h.Sessions.Delete(ctx, uid, token); err != nil {
                h.Log.Warn("logout: delete session failed", zap.Error(err), zap.Uint64("user_id", uid))
            }
        }
    }
    c.SetCookie(h.sessionCookie("", time.Unix(0, 0)))
    return c.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully"})
}

// Me returns the authenticated user's public fields.
func (h *AuthHandler) Me(c echo.Context) error {
    uid, err := currentUser(c)
    if err != nil {
        return unauthenticated(c)
    }
    u, err := h.Users.GetByID(c.Request().Context(), uid)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return unauthenticated(c)
        }
        h.Log.Error("me: lookup failed", zap.Error(err))
        return errorJSON(c, http.StatusInternalServerError, "query failed")
    }
    return c.JSON(http.StatusOK, echo.Map{
        "user_id":  u.ID,
        "username": u.Username,
        "email":    u.Email,
    })
}

func (h *AuthHandler) sessionCookie(value string, exp time.Time) *http.Cookie {
    ck := &http.Cookie{
        Name:     middleware.SessionCookieName,
        Value:    value,
        Path:     "/",
        Expires:  exp,
        HttpOnly: true,
        Secure:   h.Cfg.CookieSecure,
        SameSite: http.SameSiteLaxMode,
    }
    if value == "" {
        ck.MaxAge = -1
    }
    return ck
}
