package utils // package utils provides helper functions for session tokens and hashing

import (
    "errors"
    "strconv"
    "time"

    "github.com/golang-jwt/jwt/v5" // signs the client-side session cookie
    "github.com/google/uuid"       // random session tokens
)

// ErrInvalidSessionCookie is returned when a session cookie cannot be
// verified or carries malformed claims.
var ErrInvalidSessionCookie = errors.New("invalid session cookie")

// SessionClaims is the payload of the signed session cookie.  Subject holds
// the user ID and SessionToken the row key in user_sessions.
type SessionClaims struct {
    SessionToken string `json:"sid"`
    jwt.RegisteredClaims
}

// NewSessionToken returns a fresh random session token (UUIDv4 string).
func NewSessionToken() string {
    return uuid.NewString()
}

// SignSessionCookie builds an HS256 JWT binding userID to the session token.
// The token table stays authoritative; the signature only stops clients
// from pairing a token with another user's ID.
func SignSessionCookie(secret string, userID uint64, token string, exp time.Time) (string, error) {
    now := time.Now().UTC()
    claims := SessionClaims{
        SessionToken: token,
        RegisteredClaims: jwt.RegisteredClaims{
            Subject:   strconv.FormatUint(userID, 10),
            ExpiresAt: jwt.NewNumericDate(exp),
            IssuedAt:  jwt.NewNumericDate(now),
        },
    }
    return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseSessionCookie verifies a cookie produced by SignSessionCookie and
// returns the user ID and session token it carries.
func ParseSessionCookie(secret, raw string) (uint64, string, error) {
    var claims SessionClaims
    tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    }, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
    if err != nil || !tok.Valid {
        return 0, "", ErrInvalidSessionCookie
    }
    uid, err := strconv.ParseUint(claims.Subject, 10, 64)
    if err != nil || uid == 0 || claims.SessionToken == "" {
        return 0, "", ErrInvalidSessionCookie
    }
    return uid, claims.SessionToken, nil
}
