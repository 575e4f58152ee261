// FILE: reminders/sinks.go

package reminders

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Sink accepts a reminder for delivery at its FireAt time.
type Sink interface {
	Deliver(ctx context.Context, r Reminder) error
}

// LogSink records reminders in the log instead of posting them anywhere.
type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger.With().Str("sink", "log").Logger()}
}

func (s *LogSink) Deliver(ctx context.Context, r Reminder) error {
	s.logger.Info().
		Stringer("reminder_id", r.ID).
		Str("title", r.Title).
		Str("subtitle", r.Subtitle).
		Time("fire_at", r.FireAt).
		Msg("Reminder scheduled")
	return nil
}

// InMemorySink is a thread-safe Sink that keeps every reminder it receives.
type InMemorySink struct {
	sync.RWMutex
	reminders []Reminder
}

func NewInMemorySink() *InMemorySink {
	return &InMemorySink{}
}

func (s *InMemorySink) Deliver(ctx context.Context, r Reminder) error {
	s.Lock()
	defer s.Unlock()
	s.reminders = append(s.reminders, r)
	return nil
}

// Reminders returns a copy of everything delivered so far.
func (s *InMemorySink) Reminders() []Reminder {
	s.RLock()
	defer s.RUnlock()
	return append([]Reminder(nil), s.reminders...)
}
