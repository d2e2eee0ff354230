// internal/gateway/gateway.go
package gateway

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// Transaction statuses reported by the payment provider.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// MetadataOrderIDs is the metadata key under which a checkout transaction
// carries its order id list.
const MetadataOrderIDs = "order_ids"

// CaptureResult is the provider's answer to a capture call.
type CaptureResult struct {
	Status   string
	Metadata map[string]string
}

// OrderIDs extracts the order id list tagged onto the transaction at
// creation time.
func (r *CaptureResult) OrderIDs() []string {
	raw, ok := r.Metadata[MetadataOrderIDs]
	if !ok || raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// JoinOrderIDs encodes an order id list for transaction metadata.
func JoinOrderIDs(ids []string) string {
	return strings.Join(ids, ",")
}

// PaymentGateway wraps the external payment provider. It is stateless: the
// provider is the authority on transaction state, this adapter only shuttles
// requests and responses.
type PaymentGateway interface {
	// CreateTransaction registers a new checkout with the provider and
	// returns its transaction id. Nothing local is committed by this call.
	CreateTransaction(ctx context.Context, amount decimal.Decimal, currency string, metadata map[string]string) (string, error)
	// CaptureTransaction finalizes a transaction and reports its status plus
	// the metadata tagged at creation time.
	CaptureTransaction(ctx context.Context, transactionID string) (*CaptureResult, error)
}
