package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/saniya-gs/health-recommendation-system/internal/model"
)

// SessionRepo persists login sessions in `user_sessions`.
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// Create stores a new session row.
func (r *SessionRepo) Create(ctx context.Context, userID uint64, token string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO user_sessions (user_id, session_token, expires_at) VALUES (?, ?, ?)",
		userID, token, exp.UTC())
	return err
}

// FindByToken returns the session for token or ErrSessionNotFound.  Expiry
// is not checked here; see model.Session.Expired.
func (r *SessionRepo) FindByToken(ctx context.Context, token string) (model.Session, error) {
	var s model.Session
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, session_token, expires_at, created_at FROM user_sessions WHERE session_token = ? LIMIT 1",
		token).Scan(&s.ID, &s.UserID, &s.Token, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Session{}, ErrSessionNotFound
	}
	return s, err
}

// Delete removes the session identified by user and token.
func (r *SessionRepo) Delete(ctx context.Context, userID uint64, token string) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM user_sessions WHERE user_id = ? AND session_token = ?",
		userID, token)
	return err
}

// DeleteExpired purges every session that expired before now and returns
// the number of rows removed.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM user_sessions WHERE expires_at < ?", now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
