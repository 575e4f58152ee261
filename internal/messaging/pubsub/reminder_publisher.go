// Package pubsub publishes reminders to a Google Cloud Pub/Sub topic for a
// downstream notification worker.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/pubsub/v2"
	"github.com/illmade-knight/hot-prospects/pkg/reminders"
	"github.com/rs/zerolog"
)

// ReminderPublisher implements reminders.Sink on top of a Pub/Sub publisher.
type ReminderPublisher struct {
	publisher *pubsub.Publisher
	logger    zerolog.Logger
}

// NewReminderPublisher creates a publisher for topicID.
func NewReminderPublisher(client *pubsub.Client, topicID string, logger zerolog.Logger) *ReminderPublisher {
	return &ReminderPublisher{
		publisher: client.Publisher(topicID),
		logger:    logger.With().Str("sink", "pubsub").Str("topic_id", topicID).Logger(),
	}
}

// Deliver publishes r as JSON and waits for the server to acknowledge it.
func (p *ReminderPublisher) Deliver(ctx context.Context, r reminders.Reminder) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal reminder: %w", err)
	}

	result := p.publisher.Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"prospect_id": r.ProspectID.String(),
			"reminder_id": r.ID.String(),
		},
	})
	msgID, err := result.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to publish reminder: %w", err)
	}

	p.logger.Info().Str("message_id", msgID).Stringer("reminder_id", r.ID).Msg("Published reminder")
	return nil
}

// Stop flushes pending messages and releases the publisher.
func (p *ReminderPublisher) Stop() {
	p.publisher.Stop()
}
