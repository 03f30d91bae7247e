// Package status carries short user-facing messages to the TUI status bar.
package status

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sst/widgetlink/internal/pubsub"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelDebug Level = "debug"
)

// DefaultTTL is how long the status bar shows a message.
const DefaultTTL = 4 * time.Second

type StatusMessage struct {
	Level     Level         `json:"level"`
	Message   string        `json:"message"`
	Timestamp time.Time     `json:"timestamp"`
	TTL       time.Duration `json:"ttl"`
}

// Expired reports whether the message should no longer be shown at now.
func (m StatusMessage) Expired(now time.Time) bool {
	return m.TTL > 0 && now.Sub(m.Timestamp) > m.TTL
}

type Service struct {
	broker *pubsub.Broker[StatusMessage]
	ttl    time.Duration
}

func NewService() *Service {
	return &Service{
		broker: pubsub.NewBroker[StatusMessage](),
		ttl:    DefaultTTL,
	}
}

func (s *Service) Info(message string)  { s.publish(LevelInfo, message) }
func (s *Service) Warn(message string)  { s.publish(LevelWarn, message) }
func (s *Service) Error(message string) { s.publish(LevelError, message) }
func (s *Service) Debug(message string) { s.publish(LevelDebug, message) }

func (s *Service) Infof(format string, args ...any) {
	s.publish(LevelInfo, fmt.Sprintf(format, args...))
}

func (s *Service) Subscribe(ctx context.Context) <-chan pubsub.Event[StatusMessage] {
	return s.broker.Subscribe(ctx)
}

func (s *Service) Shutdown() {
	s.broker.Shutdown()
}

func (s *Service) publish(level Level, message string) {
	slog.Debug("status", "level", level, "message", message)
	s.broker.Publish(pubsub.EventTypeCreated, StatusMessage{
		Level:     level,
		Message:   message,
		Timestamp: time.Now(),
		TTL:       s.ttl,
	})
}
