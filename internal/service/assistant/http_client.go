package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPClient talks to a remote assistant service over JSON/HTTP.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient returns an HTTPClient for the service at baseURL. The
// timeout bounds the whole request; a timed-out call is reported as an
// error like any other transport failure.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Send posts the user turn and decodes the reply. Any network error,
// non-2xx status, or undecodable body comes back as an error so the
// caller can take its fallback path.
func (c *HTTPClient) Send(ctx context.Context, message, conversationID string) (Reply, error) {
	payload := struct {
		Message        string `json:"message"`
		ConversationID string `json:"conversation_id,omitempty"`
	}{Message: message, ConversationID: conversationID}

	body, err := json.Marshal(payload)
	if err != nil {
		return Reply{}, fmt.Errorf("encode assistant request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/assistant/messages", bytes.NewReader(body))
	if err != nil {
		return Reply{}, fmt.Errorf("build assistant request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Reply{}, fmt.Errorf("assistant request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Reply{}, fmt.Errorf("assistant responded with status %d", resp.StatusCode)
	}

	var reply Reply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return Reply{}, fmt.Errorf("decode assistant reply: %w", err)
	}
	return reply, nil
}
