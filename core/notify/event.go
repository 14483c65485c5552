package notify

import (
	"context"
	"time"
)

const (
	EventJobStarted       = "job.started"
	EventJobCompleted     = "job.completed"
	EventJobFailed        = "job.failed"
	EventJobCancelled     = "job.cancelled"
	EventJobHighErrorRate = "job.high_error_rate"
)

// Event is a single notification.
type Event struct {
	Name    string         `json:"name"`
	JobID   string         `json:"job_id"`
	Time    time.Time      `json:"time"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Sink receives events.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Publisher is the non-blocking side used by the pipeline.
type Publisher interface {
	Publish(name, jobID string, payload map[string]any)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(string, string, map[string]any) {}
