// FILE: reminders/scheduler.go

package reminders

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/illmade-knight/hot-prospects/pkg/prospects"
	"github.com/rs/zerolog"
)

// ErrPermissionDenied is reported when the user has not allowed notifications.
var ErrPermissionDenied = errors.New("notification permission denied")

// Scheduler turns "remind me about this prospect" into a delivered Reminder,
// asking for notification permission first when needed.
type Scheduler struct {
	authorizer Authorizer
	sink       Sink
	logger     zerolog.Logger

	// Now returns the current time. It defaults to time.Now.
	Now func() time.Time
}

// NewScheduler creates a Scheduler delivering to sink.
func NewScheduler(authorizer Authorizer, sink Sink, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		authorizer: authorizer,
		sink:       sink,
		logger:     logger.With().Str("component", "reminders").Logger(),
		Now:        time.Now,
	}
}

// Schedule requests a reminder for p. done, if not nil, is called exactly once
// with the delivered reminder or the reason nothing was scheduled. It may be
// called before Schedule returns.
func (s *Scheduler) Schedule(ctx context.Context, p prospects.Prospect, done func(Reminder, error)) {
	var once sync.Once
	finish := func(r Reminder, err error) {
		once.Do(func() {
			if done != nil {
				done(r, err)
			}
		})
	}
	logger := s.logger.With().Stringer("prospect_id", p.ID).Logger()

	addRequest := func() {
		r := NewReminder(p, s.now())
		if err := s.sink.Deliver(ctx, r); err != nil {
			logger.Error().Err(err).Msg("Failed to deliver reminder")
			finish(Reminder{}, fmt.Errorf("failed to deliver reminder: %w", err))
			return
		}
		logger.Info().Stringer("reminder_id", r.ID).Time("fire_at", r.FireAt).Msg("Reminder added")
		finish(r, nil)
	}

	if s.authorizer.Status(ctx) == StatusAuthorized {
		addRequest()
		return
	}

	s.authorizer.RequestAuthorization(ctx, func(granted bool, err error) {
		if err != nil {
			logger.Warn().Err(err).Msg("Notification permission request failed")
			finish(Reminder{}, fmt.Errorf("%w: %v", ErrPermissionDenied, err))
			return
		}
		if !granted {
			logger.Warn().Msg("Notification permission denied")
			finish(Reminder{}, ErrPermissionDenied)
			return
		}
		addRequest()
	})
}

func (s *Scheduler) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
