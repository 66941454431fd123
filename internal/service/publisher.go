// Package service holds outbound integrations used by the handlers.
// Publishing is best effort: errors are logged and returned so callers can
// ignore them without failing the request.
package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	q "github.com/saniya-gs/health-recommendation-system/internal/queue"
)

// EventPublisher publishes health events.
type EventPublisher interface {
	Publish(ctx context.Context, ev q.HealthEvent) error
}

// NopPublisher drops every event.  Used when events are disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, q.HealthEvent) error { return nil }

// AMQPPublisher publishes to the durable health.events queue over one
// long-lived connection and channel.  Both are opened on first use and
// reopened after the broker drops them.
type AMQPPublisher struct {
	URL         string
	DialTimeout time.Duration
	Log         *zap.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPPublisher(url string, log *zap.Logger) *AMQPPublisher {
	return &AMQPPublisher{URL: url, DialTimeout: 5 * time.Second, Log: log}
}

// channel returns the open channel, dialing when needed.  Callers hold mu.
func (p *AMQPPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() && p.conn != nil && !p.conn.IsClosed() {
		return p.ch, nil
	}
	p.closeLocked()

	conn, err := amqp.DialConfig(p.URL, amqp.Config{Dial: amqp.DefaultDial(p.DialTimeout)})
	if err != nil {
		p.Log.Warn("rabbitmq: dial failed", zap.Error(err))
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		p.Log.Warn("rabbitmq: channel open failed", zap.Error(err))
		return nil, err
	}
	// Idempotent; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(q.HealthEventsQueue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		p.Log.Warn("rabbitmq: queue declare failed", zap.Error(err))
		return nil, err
	}
	p.conn, p.ch = conn, ch
	return ch, nil
}

// Publish sends ev as a persistent JSON message.
func (p *AMQPPublisher) Publish(ctx context.Context, ev q.HealthEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         ev.Type,
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	ch, err := p.channel()
	if err != nil {
		return err
	}
	if err := ch.PublishWithContext(ctx, "", q.HealthEventsQueue, false, false, pub); err != nil {
		p.Log.Warn("rabbitmq: publish failed", zap.Error(err), zap.String("type", ev.Type))
		p.closeLocked() // next publish redials
		return err
	}
	return nil
}

// Close releases the channel and connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
	return nil
}

func (p *AMQPPublisher) closeLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
