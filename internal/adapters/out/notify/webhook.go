// Package notify provides outbound customer notification adapters.
// The webhook notifier relays committed status changes to an external
// endpoint (storefront, messaging bridge); the noop notifier is used when
// no endpoint is configured.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

const defaultTimeout = 10 * time.Second

// statusChangedPayload is the wire format posted to the webhook endpoint.
type statusChangedPayload struct {
	OrderCode    string `json:"order_code"`
	FromStatus   string `json:"from_status"`
	ToStatus     string `json:"to_status"`
	NoteCustomer string `json:"note_customer,omitempty"`
}

// WebhookNotifier posts status change notifications as JSON to a configured
// URL. Delivery is best effort; the caller decides what to do with failures.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

// NewWebhookNotifier creates a notifier for the given endpoint URL.
func NewWebhookNotifier(url string) (*WebhookNotifier, error) {
	if url == "" {
		return nil, errs.NewValueIsRequiredError("webhook URL")
	}

	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: defaultTimeout},
	}, nil
}

// NotifyStatusChanged posts the notification to the webhook endpoint.
// Any non-2xx response is an error.
func (n *WebhookNotifier) NotifyStatusChanged(ctx context.Context, notification ports.StatusNotification) error {
	payload := statusChangedPayload{
		OrderCode:    notification.OrderCode,
		FromStatus:   notification.From.String(),
		ToStatus:     notification.To.String(),
		NoteCustomer: notification.NoteCustomer,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %s", resp.Status)
	}

	return nil
}

// NoopNotifier discards all notifications. Used when no webhook URL is
// configured so handlers never need a nil check.
type NoopNotifier struct{}

// NewNoopNotifier creates a notifier that does nothing.
func NewNoopNotifier() NoopNotifier {
	return NoopNotifier{}
}

// NotifyStatusChanged discards the notification.
func (NoopNotifier) NotifyStatusChanged(_ context.Context, _ ports.StatusNotification) error {
	return nil
}
