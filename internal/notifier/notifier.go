// Package notifier sends messages to users through the messaging
// platform's public API.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/yoobic-labs/helpdesk-bot/pkg/logger"
	"github.com/yoobic-labs/helpdesk-bot/pkg/metrics"
)

const defaultTimeout = 10 * time.Second

// Client calls the platform's bot messaging endpoint.
type Client struct {
	baseURL string
	botID   string
	token   string
	http    *http.Client
	logger  *logger.Logger
}

// New creates a client for the platform API at the given hostname.
func New(hostname, botID, accessToken string, log *logger.Logger) *Client {
	return &Client{
		baseURL: "https://" + hostname,
		botID:   botID,
		token:   accessToken,
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  log,
	}
}

type messageBody struct {
	Message string `json:"message"`
}

// Send delivers one message to a recipient. The notify=false query flag
// suppresses the platform's own push notification for the message.
func (c *Client) Send(ctx context.Context, recipientID, text string) error {
	url := fmt.Sprintf("%s/public/api/bots/%s/users/%s/messages?notify=false",
		c.baseURL, c.botID, recipientID)

	payload, err := json.Marshal(messageBody{Message: text})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("send message: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Notify sends a message without blocking the caller. Failures are
// logged and swallowed; there are no retries and no result to await.
func (c *Client) Notify(recipientID, text string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		defer cancel()

		if err := c.Send(ctx, recipientID, text); err != nil {
			metrics.RecordDelivery(false)
			c.logger.Error("outbound delivery failed",
				zap.String("recipient_id", recipientID),
				zap.Error(err),
			)
			return
		}
		metrics.RecordDelivery(true)
	}()
}
