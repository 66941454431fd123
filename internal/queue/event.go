// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

import "time"

// HealthEventsQueue is the durable queue carrying HealthEvent messages.
const HealthEventsQueue = "health.events"

// Event types.
const (
	EventDiseasePredicted     = "disease.predicted"
	EventAssessmentRecorded   = "mental_health.assessed"
	EventFitnessPlanGenerated = "fitness.plan_generated"
)

// HealthEvent is published after a prediction result is stored.  It carries
// enough to audit or notify without reading the primary database.
type HealthEvent struct {
	Type       string    `json:"type"`
	UserID     uint64    `json:"user_id"`
	RecordID   uint64    `json:"record_id"`
	RiskLevel  string    `json:"risk_level,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
