package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TokenPrefix is the shape the Expo push service expects; anything else
// is dropped before a batch is built.
const TokenPrefix = "ExponentPushToken"

// ValidToken reports whether the address can be submitted to Expo.
func ValidToken(token string) bool {
	return strings.HasPrefix(token, TokenPrefix)
}

const ticketErrDeviceNotRegistered = "DeviceNotRegistered"

// Message is one addressed push notification in a batch.
type Message struct {
	To       string            `json:"to"`
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Data     map[string]string `json:"data,omitempty"`
	Sound    string            `json:"sound,omitempty"`
	Priority string            `json:"priority,omitempty"`
}

// Ticket is the per-message outcome the transport returns, index-aligned
// with the submitted batch.
type Ticket struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details *TicketDetails `json:"details,omitempty"`
}

type TicketDetails struct {
	Error string `json:"error,omitempty"`
}

// OK reports a confirmed hand-off to the provider.
func (t Ticket) OK() bool {
	return t.Status == "ok"
}

// DeviceNotRegistered reports that the recipient address is permanently
// invalid and should be pruned from the registry.
func (t Ticket) DeviceNotRegistered() bool {
	return t.Details != nil && t.Details.Error == ticketErrDeviceNotRegistered
}

// Transport is the outbound push-delivery boundary.
type Transport interface {
	SendBatch(ctx context.Context, batch []Message) ([]Ticket, error)
}

// ExpoTransport submits batches to the Expo push HTTP API.
type ExpoTransport struct {
	url        string
	httpClient *http.Client
}

func NewExpoTransport(url string, timeout time.Duration) *ExpoTransport {
	return &ExpoTransport{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type expoResponse struct {
	Data []Ticket `json:"data"`
}

// SendBatch posts one batch and decodes the per-message tickets.
func (t *ExpoTransport) SendBatch(ctx context.Context, batch []Message) ([]Ticket, error) {
	payload, err := json.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal push batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip, deflate")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send push batch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("push batch rejected with status %d: %s", resp.StatusCode, string(body))
	}

	var decoded expoResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode push tickets: %w", err)
	}
	if len(decoded.Data) != len(batch) {
		return nil, fmt.Errorf("push transport returned %d tickets for %d messages", len(decoded.Data), len(batch))
	}
	return decoded.Data, nil
}
