// internal/notify/notifier.go
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Notifier delivers best-effort events to the platform's messaging side.
// Delivery is fire-and-forget: failures are logged and swallowed, they never
// fail the operation that triggered them.
type Notifier interface {
	CheckoutCreated(ctx context.Context, transactionID string, orderIDs []string, amount decimal.Decimal, currency string)
}

type checkoutCreatedEvent struct {
	Event         string          `json:"event"`
	TransactionID string          `json:"transaction_id"`
	OrderIDs      []string        `json:"order_ids"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
}

// HTTPNotifier posts events to a configured URL.
type HTTPNotifier struct {
	url        string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewHTTPNotifier creates a notifier posting to url.
func NewHTTPNotifier(url string, logger zerolog.Logger) *HTTPNotifier {
	return &HTTPNotifier{
		url:        url,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     logger.With().Str("component", "notifier").Logger(),
	}
}

// CheckoutCreated announces a newly created checkout transaction.
func (n *HTTPNotifier) CheckoutCreated(ctx context.Context, transactionID string, orderIDs []string, amount decimal.Decimal, currency string) {
	payload, err := json.Marshal(checkoutCreatedEvent{
		Event:         "checkout.created",
		TransactionID: transactionID,
		OrderIDs:      orderIDs,
		Amount:        amount,
		Currency:      currency,
	})
	if err != nil {
		n.logger.Error().Err(err).Msg("failed to encode notification")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		n.logger.Error().Err(err).Msg("failed to build notification request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		n.logger.Warn().Err(err).Str("transaction_id", transactionID).Msg("notification delivery failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		n.logger.Warn().Int("status", resp.StatusCode).Str("transaction_id", transactionID).Msg("notification rejected")
	}
}

// NopNotifier discards all events. Used when no notification URL is
// configured and in tests.
type NopNotifier struct{}

func (NopNotifier) CheckoutCreated(ctx context.Context, transactionID string, orderIDs []string, amount decimal.Decimal, currency string) {
}
