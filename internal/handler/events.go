package handler

import (
	"context"
	"time"

	"go.uber.org/zap"

	q "github.com/saniya-gs/health-recommendation-system/internal/queue"
	"github.com/saniya-gs/health-recommendation-system/internal/service"
)

// publishEvent announces a stored record.  Failures are logged only; the
// record is already committed.
func publishEvent(ctx context.Context, pub service.EventPublisher, log *zap.Logger, typ string, userID, recordID uint64, risk string) {
	if pub == nil {
		return
	}
	ev := q.HealthEvent{
		Type:       typ,
		UserID:     userID,
		RecordID:   recordID,
		RiskLevel:  risk,
		OccurredAt: time.Now().UTC(),
	}
	if err := pub.Publish(ctx, ev); err != nil {
		log.Warn("publish health event failed", zap.String("type", typ), zap.Error(err))
	}
}
