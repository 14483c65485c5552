package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// LogSink writes events to a logger.
type LogSink struct {
	Logger *zap.Logger
}

func (s LogSink) Publish(_ context.Context, event Event) error {
	fields := []zap.Field{
		zap.String("event", event.Name),
		zap.String("job_id", event.JobID),
	}
	for k, v := range event.Payload {
		fields = append(fields, zap.Any(k, v))
	}
	s.Logger.Info("Pipeline event", fields...)
	return nil
}

// RedisSink publishes events on a redis channel.
type RedisSink struct {
	Client  redis.UniversalClient
	Channel string
}

func (s RedisSink) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if err := s.Client.Publish(ctx, s.Channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// MemorySink records events.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

func (s *MemorySink) Publish(_ context.Context, event Event) error {
	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()
	return nil
}

// Events returns a copy of the recorded events.
func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

// Names returns the recorded event names in order.
func (s *MemorySink) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, len(s.events))
	for i, e := range s.events {
		names[i] = e.Name
	}
	return names
}
