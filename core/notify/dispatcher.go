package notify

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Dispatcher fans events out to sinks from a background goroutine.
type Dispatcher struct {
	sinks   []Sink
	queue   chan Event
	logger  *zap.Logger
	dropped atomic.Int64
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
	timeout time.Duration
}

// NewDispatcher starts a dispatcher with a queue of queueSize events.
func NewDispatcher(logger *zap.Logger, queueSize int, sinks ...Sink) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 256
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dispatcher{
		sinks:   sinks,
		queue:   make(chan Event, queueSize),
		logger:  logger,
		timeout: 5 * time.Second,
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Publish enqueues an event. It never blocks.
func (d *Dispatcher) Publish(name, jobID string, payload map[string]any) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.dropped.Add(1)
		return
	}
	event := Event{Name: name, JobID: jobID, Time: time.Now().UTC(), Payload: payload}
	select {
	case d.queue <- event:
	default:
		d.dropped.Add(1)
		d.logger.Warn("Notification queue full, event dropped", zap.String("event", name), zap.String("job_id", jobID))
	}
}

// Dropped returns the number of events that could not be queued.
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for event := range d.queue {
		for _, sink := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
			if err := sink.Publish(ctx, event); err != nil {
				d.logger.Warn("Failed to deliver notification", zap.String("event", event.Name), zap.Error(err))
			}
			cancel()
		}
	}
}
