package notify_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"orderflow/internal/adapters/out/notify"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWebhookNotifier_EmptyURL_ReturnsError(t *testing.T) {
	_, err := notify.NewWebhookNotifier("")

	require.Error(t, err)
}

func TestWebhookNotifier_NotifyStatusChanged_PostsPayload(t *testing.T) {
	var received map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier, err := notify.NewWebhookNotifier(server.URL)
	require.NoError(t, err)

	err = notifier.NotifyStatusChanged(t.Context(), ports.StatusNotification{
		OrderCode:    "ORD-2026-00042",
		From:         order.Packing,
		To:           order.Shipped,
		NoteCustomer: "Your order is on its way.",
	})

	require.NoError(t, err)
	assert.Equal(t, "ORD-2026-00042", received["order_code"])
	assert.Equal(t, "PACKING", received["from_status"])
	assert.Equal(t, "SHIPPED", received["to_status"])
	assert.Equal(t, "Your order is on its way.", received["note_customer"])
}

func TestWebhookNotifier_NotifyStatusChanged_Non2xx_ReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	notifier, err := notify.NewWebhookNotifier(server.URL)
	require.NoError(t, err)

	err = notifier.NotifyStatusChanged(t.Context(), ports.StatusNotification{
		OrderCode: "ORD-2026-00042",
		From:      order.Packing,
		To:        order.Shipped,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestNoopNotifier_NotifyStatusChanged_ReturnsNil(t *testing.T) {
	notifier := notify.NewNoopNotifier()

	err := notifier.NotifyStatusChanged(t.Context(), ports.StatusNotification{})

	require.NoError(t, err)
}
