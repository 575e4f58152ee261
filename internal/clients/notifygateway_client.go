// Package clients provides HTTP clients for communicating with external services.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/illmade-knight/hot-prospects/pkg/reminders"
	"github.com/rs/zerolog"
)

// NotifyGatewayClient hands reminders to a push notification gateway, which
// delivers them to the user's device at FireAt. It implements reminders.Sink.
type NotifyGatewayClient struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewNotifyGatewayClient creates a new client for the notification gateway.
func NewNotifyGatewayClient(baseURL string, logger zerolog.Logger) *NotifyGatewayClient {
	return &NotifyGatewayClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger.With().Str("client", "notify-gateway").Logger(),
	}
}

// Deliver posts the reminder as JSON to {baseURL}/reminders.
func (c *NotifyGatewayClient) Deliver(ctx context.Context, r reminders.Reminder) error {
	url := c.baseURL + "/reminders"

	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal reminder: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create reminder request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute reminder request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("notify gateway returned unexpected status code: %d", resp.StatusCode)
	}

	c.logger.Info().Stringer("reminder_id", r.ID).Stringer("prospect_id", r.ProspectID).Msg("Successfully sent reminder to notify gateway")
	return nil
}
