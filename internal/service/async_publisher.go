package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/saniya-gs/health-recommendation-system/internal/metrics"
	q "github.com/saniya-gs/health-recommendation-system/internal/queue"
)

const (
	defaultEventBuffer  = 256
	defaultEventWorkers = 2
)

// AsyncPublisher queues events for a fixed pool of workers so request
// latency never includes the broker round trip.  When the queue is full the
// event is dropped and counted.  Publish always returns nil.
type AsyncPublisher struct {
	Next    EventPublisher
	Timeout time.Duration
	Log     *zap.Logger

	events chan q.HealthEvent
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewAsyncPublisher starts workers workers behind a queue of buffer
// events.  Non-positive values fall back to the defaults.
func NewAsyncPublisher(next EventPublisher, log *zap.Logger) *AsyncPublisher {
	return NewAsyncPublisherSize(next, log, defaultEventBuffer, defaultEventWorkers)
}

func NewAsyncPublisherSize(next EventPublisher, log *zap.Logger, buffer, workers int) *AsyncPublisher {
	if buffer <= 0 {
		buffer = defaultEventBuffer
	}
	if workers <= 0 {
		workers = defaultEventWorkers
	}
	a := &AsyncPublisher{
		Next:    next,
		Timeout: 10 * time.Second,
		Log:     log,
		events:  make(chan q.HealthEvent, buffer),
	}
	a.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go a.work()
	}
	return a
}

func (a *AsyncPublisher) work() {
	defer a.wg.Done()
	for ev := range a.events {
		ctx, cancel := context.WithTimeout(context.Background(), a.Timeout)
		if err := a.Next.Publish(ctx, ev); err != nil {
			a.Log.Warn("health event dropped", zap.String("type", ev.Type), zap.Error(err))
		}
		cancel()
	}
}

func (a *AsyncPublisher) Publish(_ context.Context, ev q.HealthEvent) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		metrics.EventsDropped.Inc()
		return nil
	}
	select {
	case a.events <- ev:
	default:
		metrics.EventsDropped.Inc()
		a.Log.Warn("health event queue full, dropping", zap.String("type", ev.Type))
	}
	return nil
}

// Wait stops accepting events and blocks until the queued ones are
// published.  Later Publish calls drop their event.
func (a *AsyncPublisher) Wait() {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.events)
	}
	a.mu.Unlock()
	a.wg.Wait()
}
