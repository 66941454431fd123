package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/saniya-gs/health-recommendation-system/internal/metrics"
)

// SessionPurger removes expired sessions.
type SessionPurger interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// PurgeExpiredSessions runs one cleanup pass.
func PurgeExpiredSessions(ctx context.Context, repo SessionPurger, log *zap.Logger) {
	n, err := repo.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		log.Error("session cleanup failed", zap.Error(err))
		return
	}
	metrics.SessionsPurged.Add(float64(n))
	if n > 0 {
		log.Info("expired sessions purged", zap.Int64("count", n))
	}
}

// StartSessionCleanup schedules PurgeExpiredSessions on spec (a cron
// expression such as "@hourly").  Stop the returned scheduler on shutdown.
func StartSessionCleanup(spec string, repo SessionPurger, log *zap.Logger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		PurgeExpiredSessions(ctx, repo, log)
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
