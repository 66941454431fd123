// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values let handlers distinguish failure
// scenarios with errors.Is and map them onto HTTP statuses.
package repository

import "errors"

// ErrNotFound is returned when a lookup matches no row.  Handlers should
// translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrUserExists is returned when a username or email is already taken.
var ErrUserExists = errors.New("user already exists")

// ErrSessionNotFound is returned when a session token has no row.
var ErrSessionNotFound = errors.New("session not found")
