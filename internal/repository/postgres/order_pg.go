// internal/repository/postgres/order_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"settleflow/internal/domain"
	"settleflow/internal/repository"
	"settleflow/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// OrderRepository implements repository.OrderRepository for PostgreSQL.
type OrderRepository struct{}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sqlx.DB) repository.OrderRepository {
	return &OrderRepository{}
}

const orderColumns = `id, buyer_id, seller_id, fulfiller_id, total, currency, status, payment_method, payment_status,
	delivery_address, delivery_phone, created_at, confirmed_at, assigned_at, completed_at`

// CreateOrder inserts an order together with its line items.
func (r *OrderRepository) CreateOrder(ctx context.Context, q repository.DBExecutor, order *domain.Order) error {
	query := `INSERT INTO orders (id, buyer_id, seller_id, fulfiller_id, total, currency, status, payment_method,
              payment_status, delivery_address, delivery_phone, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := q.ExecContext(ctx, query,
		order.ID,
		order.BuyerID,
		order.SellerID,
		order.FulfillerID,
		order.Total,
		order.Currency,
		order.Status,
		order.PaymentMethod,
		order.PaymentStatus,
		order.DeliveryAddress,
		order.DeliveryPhone,
		order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `INSERT INTO order_items (order_id, product_id, quantity, unit_price, line_total)
                  VALUES ($1, $2, $3, $4, $5) RETURNING id`
	for i := range order.Items {
		it := &order.Items[i]
		if err := q.QueryRowContext(ctx, itemQuery, order.ID, it.ProductID, it.Quantity, it.UnitPrice, it.LineTotal).Scan(&it.ID); err != nil {
			return fmt.Errorf("failed to create order item for order %s: %w", order.ID, err)
		}
		it.OrderID = order.ID
	}
	return nil
}

// GetOrderByID retrieves an order and its line items.
func (r *OrderRepository) GetOrderByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.Order, error) {
	var order domain.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	err := q.GetContext(ctx, &order, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}

	itemQuery := `SELECT id, order_id, product_id, quantity, unit_price, line_total FROM order_items WHERE order_id = $1 ORDER BY id`
	if err := q.SelectContext(ctx, &order.Items, itemQuery, id); err != nil {
		return nil, fmt.Errorf("failed to get items for order %s: %w", id, err)
	}
	return &order, nil
}

// GetOrdersByIDs retrieves a batch of orders without their line items. The
// settlement paths only need totals, parties and statuses.
func (r *OrderRepository) GetOrdersByIDs(ctx context.Context, q repository.DBExecutor, ids []string) ([]domain.Order, error) {
	orders := []domain.Order{}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = ANY($1)`
	if err := q.SelectContext(ctx, &orders, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to get orders by ids: %w", err)
	}
	return orders, nil
}

// MarkOrderPaid performs the idempotent settlement transition. The WHERE
// clause is the guard: a second capture of the same order changes no rows.
func (r *OrderRepository) MarkOrderPaid(ctx context.Context, q repository.DBExecutor, id string) (bool, error) {
	query := `UPDATE orders
              SET payment_status = $1, status = $2, confirmed_at = $3
              WHERE id = $4 AND payment_status <> $1`
	result, err := q.ExecContext(ctx, query, domain.PaymentStatusCompleted, domain.OrderStatusConfirmed, time.Now().UTC(), id)
	if err != nil {
		return false, fmt.Errorf("failed to mark order %s paid: %w", id, err)
	}
	return rowChanged(result, id)
}

// ClaimOrder is the single conditional write that resolves claim contention:
// the fulfiller and status preconditions live in the WHERE clause, so the
// database picks exactly one winner among concurrent callers.
func (r *OrderRepository) ClaimOrder(ctx context.Context, q repository.DBExecutor, id, fulfillerID string) (bool, error) {
	query := `UPDATE orders
              SET fulfiller_id = $1, status = $2, assigned_at = $3
              WHERE id = $4 AND fulfiller_id IS NULL AND status = $5`
	result, err := q.ExecContext(ctx, query, fulfillerID, domain.OrderStatusInProgress, time.Now().UTC(), id, domain.OrderStatusConfirmed)
	if err != nil {
		return false, fmt.Errorf("failed to claim order %s: %w", id, err)
	}
	return rowChanged(result, id)
}

// ReleaseOrder undoes a claim by the same fulfiller, making the order
// claimable again.
func (r *OrderRepository) ReleaseOrder(ctx context.Context, q repository.DBExecutor, id, fulfillerID string) (bool, error) {
	query := `UPDATE orders
              SET fulfiller_id = NULL, status = $1, assigned_at = NULL
              WHERE id = $2 AND fulfiller_id = $3 AND status = $4`
	result, err := q.ExecContext(ctx, query, domain.OrderStatusConfirmed, id, fulfillerID, domain.OrderStatusInProgress)
	if err != nil {
		return false, fmt.Errorf("failed to release order %s: %w", id, err)
	}
	return rowChanged(result, id)
}

// CompleteOrder moves an in-progress order to its terminal state.
func (r *OrderRepository) CompleteOrder(ctx context.Context, q repository.DBExecutor, id string) (bool, error) {
	query := `UPDATE orders
              SET status = $1, completed_at = $2
              WHERE id = $3 AND status = $4`
	result, err := q.ExecContext(ctx, query, domain.OrderStatusCompleted, time.Now().UTC(), id, domain.OrderStatusInProgress)
	if err != nil {
		return false, fmt.Errorf("failed to complete order %s: %w", id, err)
	}
	return rowChanged(result, id)
}

func rowChanged(result sql.Result, id string) (bool, error) {
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected for order %s: %w", id, err)
	}
	return affected > 0, nil
}
