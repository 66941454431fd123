package middleware

import "github.com/labstack/echo/v4"

// Context keys set by RequireSession.
const (
    ContextUserID       = "user_id"
    ContextSessionToken = "session_token"
)

// UserID returns the authenticated user's ID stored by RequireSession.
func UserID(c echo.Context) (uint64, bool) {
    id, ok := c.Get(ContextUserID).(uint64)
    return id, ok && id != 0
}

// SessionToken returns the session token stored by RequireSession.
func SessionToken(c echo.Context) string {
    s, _ := c.Get(ContextSessionToken).(string)
    return s
}
