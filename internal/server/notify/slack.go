// Package notify delivers one-shot notifications to Slack incoming
// webhooks. Delivery is fire-and-forget: no retries, no queue.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type slackMessage struct {
	Text      string `json:"text"`
	Username  string `json:"username"`
	IconEmoji string `json:"icon_emoji"`
}

type Slack struct {
	client *http.Client
}

func NewSlack(timeout time.Duration) *Slack {
	return &Slack{client: &http.Client{Timeout: timeout}}
}

// Send posts text to the given webhook URL. Slack answers non-2xx for
// revoked or malformed webhooks; the response body is included in the
// error because it carries Slack's reason ("no_service", etc.).
func (s *Slack) Send(ctx context.Context, webhookURL, text string) error {

	body, err := json.Marshal(slackMessage{
		Text:      text,
		Username:  "QuackNote",
		IconEmoji: ":duck:",
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("slack webhook answered %s: %s", resp.Status, string(b))
	}
	return nil
}
