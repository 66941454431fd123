package queue

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleWritesAuditLine(t *testing.T) {
	var buf bytes.Buffer
	c := &Consumer{Sink: &buf, Log: zap.NewNop()}

	body, err := json.Marshal(HealthEvent{
		Type:       EventDiseasePredicted,
		UserID:     3,
		RecordID:   11,
		RiskLevel:  "high",
		OccurredAt: time.Date(2026, 10, 1, 8, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NoError(t, c.Handle(body))
	assert.Equal(t, "[2026-10-01T08:30:00Z] disease.predicted | user_id=3 | record_id=11 | risk=high\n", buf.String())
}

func TestHandleRejectsBadPayloads(t *testing.T) {
	var buf bytes.Buffer
	c := &Consumer{Sink: &buf, Log: zap.NewNop()}

	assert.Error(t, c.Handle([]byte("not json")))
	assert.Error(t, c.Handle([]byte(`{"user_id":1}`)))
	assert.Empty(t, buf.String())
}

func TestFormatAuditLineWithoutRisk(t *testing.T) {
	line := FormatAuditLine(HealthEvent{
		Type:       EventFitnessPlanGenerated,
		UserID:     1,
		RecordID:   2,
		OccurredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	assert.Contains(t, line, "risk=-")
}
