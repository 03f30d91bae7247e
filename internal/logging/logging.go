// Package logging keeps recent application logs in memory and fans them out
// to the TUI logs page.
package logging

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sst/widgetlink/internal/pubsub"
)

const DefaultCapacity = 500

const EventLogCreated pubsub.EventType = "log_created"

type Log struct {
	ID         string            `json:"id"`
	Timestamp  time.Time         `json:"timestamp"`
	Level      string            `json:"level"`
	Message    string            `json:"message"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Service is a bounded in-memory log store. When full, the oldest entry is
// overwritten.
type Service struct {
	mu     sync.RWMutex
	logs   []Log
	next   int
	full   bool
	broker *pubsub.Broker[Log]
}

func NewService(capacity int) *Service {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Service{
		logs:   make([]Log, capacity),
		broker: pubsub.NewBroker[Log](),
	}
}

// Create stores entry, filling in its ID, level and timestamp when missing,
// and publishes it to subscribers.
func (s *Service) Create(_ context.Context, entry Log) Log {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Level == "" {
		entry.Level = "info"
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	s.mu.Lock()
	s.logs[s.next] = entry
	s.next = (s.next + 1) % len(s.logs)
	if s.next == 0 {
		s.full = true
	}
	s.mu.Unlock()

	s.broker.Publish(EventLogCreated, entry)
	return entry
}

// List returns up to limit entries, oldest first. A limit <= 0 returns all.
func (s *Service) List(limit int) []Log {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ordered []Log
	if s.full {
		ordered = append(ordered, s.logs[s.next:]...)
	}
	ordered = append(ordered, s.logs[:s.next]...)

	if limit > 0 && len(ordered) > limit {
		ordered = ordered[len(ordered)-limit:]
	}
	return ordered
}

func (s *Service) Subscribe(ctx context.Context) <-chan pubsub.Event[Log] {
	return s.broker.Subscribe(ctx)
}

func (s *Service) Shutdown() {
	s.broker.Shutdown()
}
