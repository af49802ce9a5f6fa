package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

const (
	SeverityInfo    = "info"
	SeveritySuccess = "success"
	SeverityError   = "error"
)

// Alert sounds played by the dashboard.
const (
	AlertNewOrder   = "new_order"
	AlertOrderReady = "order_ready"
)

// WebhookNotifier posts toasts and audible-alert triggers to the dashboard's
// notification endpoint. Both are fire-and-forget side channels: failures are
// logged and never reach the reconciliation state.
type WebhookNotifier struct {
	baseURL    string
	httpClient *http.Client
}

func NewWebhookNotifier(baseURL string, timeout time.Duration) *WebhookNotifier {
	return &WebhookNotifier{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (n *WebhookNotifier) Toast(ctx context.Context, message, severity string) {
	n.post(ctx, "/toasts", map[string]string{
		"message":  message,
		"severity": severity,
	})
}

func (n *WebhookNotifier) Alert(ctx context.Context, sound string) {
	n.post(ctx, "/alerts", map[string]string{"sound": sound})
}

func (n *WebhookNotifier) post(ctx context.Context, path string, payload map[string]string) {
	if n.baseURL == "" {
		log.Printf("notify %s: %v", path, payload)
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("notify: marshal: %v", err)
		return
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := n.httpClient.Do(req)
	if err != nil {
		log.Printf("notify: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		log.Printf("notify: webhook returned status %d", resp.StatusCode)
	}
}
