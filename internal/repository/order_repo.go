// internal/repository/order_repo.go
package repository

import (
	"context"

	"settleflow/internal/domain"
)

// OrderRepository defines the interface for order data operations. The
// conditional methods return whether a row actually changed; that result is
// the atomicity primitive the claim and capture flows are built on.
type OrderRepository interface {
	// CreateOrder inserts an order with its line items.
	CreateOrder(ctx context.Context, q DBExecutor, order *domain.Order) error
	// GetOrderByID retrieves an order and its line items.
	GetOrderByID(ctx context.Context, q DBExecutor, id string) (*domain.Order, error)
	// GetOrdersByIDs retrieves a batch of orders; missing ids are simply
	// absent from the result.
	GetOrdersByIDs(ctx context.Context, q DBExecutor, ids []string) ([]domain.Order, error)
	// MarkOrderPaid transitions payment_status to completed and status to
	// confirmed, only if the order is not already paid. Returns true when the
	// row changed; false means the transition already happened.
	MarkOrderPaid(ctx context.Context, q DBExecutor, id string) (bool, error)
	// ClaimOrder assigns a fulfiller with a single conditional write: it only
	// succeeds if the order is confirmed and unassigned. Exactly one of any
	// set of concurrent callers sees true.
	ClaimOrder(ctx context.Context, q DBExecutor, id, fulfillerID string) (bool, error)
	// ReleaseOrder clears the fulfiller set by ClaimOrder and returns the
	// order to the confirmed state, making it claimable again.
	ReleaseOrder(ctx context.Context, q DBExecutor, id, fulfillerID string) (bool, error)
	// CompleteOrder moves an in-progress order to its terminal completed state.
	CompleteOrder(ctx context.Context, q DBExecutor, id string) (bool, error)
}
