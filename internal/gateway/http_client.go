// internal/gateway/http_client.go
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"settleflow/internal/util"
)

// Client is the HTTP implementation of PaymentGateway.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a gateway client. The timeout bounds every provider call;
// the provider is a network dependency and must never hang a checkout.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "gateway").Logger(),
	}
}

type createTransactionRequest struct {
	Amount   decimal.Decimal   `json:"amount"`
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata"`
}

type transactionResponse struct {
	ID       string            `json:"id"`
	Status   string            `json:"status"`
	Metadata map[string]string `json:"metadata"`
	Message  string            `json:"message"`
}

// CreateTransaction registers a checkout with the provider.
func (c *Client) CreateTransaction(ctx context.Context, amount decimal.Decimal, currency string, metadata map[string]string) (string, error) {
	reqBody := createTransactionRequest{Amount: amount, Currency: currency, Metadata: metadata}

	var resp transactionResponse
	if err := c.post(ctx, "/transactions", reqBody, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("provider returned no transaction id: %w", util.ErrGateway)
	}

	c.logger.Info().Str("transaction_id", resp.ID).Str("currency", currency).Msg("gateway transaction created")
	return resp.ID, nil
}

// CaptureTransaction finalizes a provider transaction.
func (c *Client) CaptureTransaction(ctx context.Context, transactionID string) (*CaptureResult, error) {
	var resp transactionResponse
	if err := c.post(ctx, "/transactions/"+transactionID+"/capture", struct{}{}, &resp); err != nil {
		return nil, err
	}

	c.logger.Info().Str("transaction_id", transactionID).Str("status", resp.Status).Msg("gateway transaction captured")
	return &CaptureResult{Status: resp.Status, Metadata: resp.Metadata}, nil
}

func (c *Client) post(ctx context.Context, path string, body, dest interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode gateway request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway call %s failed: %w: %v", path, util.ErrGateway, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read gateway response: %w", util.ErrGateway)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error().Int("status", resp.StatusCode).Str("path", path).Bytes("body", raw).Msg("gateway returned non-success status")
		return fmt.Errorf("gateway call %s returned status %d: %w", path, resp.StatusCode, util.ErrGateway)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", util.ErrGateway)
	}
	return nil
}
