package model

import "time"

// User represents an account row in the `users` table.  Handlers build
// their own response shapes; PasswordHash never leaves the server.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
type User struct {
    ID           uint64    // users.id
    Username     string    // users.username
    Email        string    // users.email
    PasswordHash string    // users.password_hash
    CreatedAt    time.Time // users.created_at
}

// Session models an entry in the `user_sessions` table.  The token is the
// random value handed to the client at login; a session is valid while the
// row exists and ExpiresAt lies in the future.
type Session struct {
    ID        uint64    // user_sessions.id
    UserID    uint64    // user_sessions.user_id
    Token     string    // user_sessions.session_token
    ExpiresAt time.Time // user_sessions.expires_at
    CreatedAt time.Time // user_sessions.created_at
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
    return now.After(s.ExpiresAt)
}
