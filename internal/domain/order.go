// internal/domain/order.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus defines the fulfillment state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCanceled   OrderStatus = "canceled"
)

// PaymentStatus defines the payment state of an order.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// PaymentMethod defines how an order is paid.
type PaymentMethod string

const (
	PaymentMethodMobileMoney PaymentMethod = "mobile_money"
	PaymentMethodCard        PaymentMethod = "card"
)

// OrderItem is one purchased line of an order. Lines are immutable once the
// order is created.
type OrderItem struct {
	ID        int64           `db:"id" json:"id"`
	OrderID   string          `db:"order_id" json:"order_id"`
	ProductID string          `db:"product_id" json:"product_id"`
	Quantity  int             `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
	LineTotal decimal.Decimal `db:"line_total" json:"line_total"`
}

// Order is a buyer's purchase from one seller, tracked through payment and
// fulfillment. Total equals the sum of line totals at creation time and never
// changes afterwards.
type Order struct {
	ID              string          `db:"id" json:"id"`
	BuyerID         string          `db:"buyer_id" json:"buyer_id"`
	SellerID        string          `db:"seller_id" json:"seller_id"`
	FulfillerID     *string         `db:"fulfiller_id" json:"fulfiller_id"`
	Items           []OrderItem     `db:"-" json:"items,omitempty"`
	Total           decimal.Decimal `db:"total" json:"total"`
	Currency        string          `db:"currency" json:"currency"`
	Status          OrderStatus     `db:"status" json:"status"`
	PaymentMethod   PaymentMethod   `db:"payment_method" json:"payment_method"`
	PaymentStatus   PaymentStatus   `db:"payment_status" json:"payment_status"`
	DeliveryAddress string          `db:"delivery_address" json:"delivery_address"`
	DeliveryPhone   string          `db:"delivery_phone" json:"delivery_phone"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	ConfirmedAt     *time.Time      `db:"confirmed_at" json:"confirmed_at"`
	AssignedAt      *time.Time      `db:"assigned_at" json:"assigned_at"`
	CompletedAt     *time.Time      `db:"completed_at" json:"completed_at"`
}

// NewOrder creates a pending, unpaid Order. The total is derived from the
// line totals; callers never set it directly.
func NewOrder(buyerID, sellerID, currency string, method PaymentMethod, address, phone string, items []OrderItem) *Order {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal)
	}
	o := &Order{
		ID:              uuid.NewString(),
		BuyerID:         buyerID,
		SellerID:        sellerID,
		Items:           items,
		Total:           total,
		Currency:        currency,
		Status:          OrderStatusPending,
		PaymentMethod:   method,
		PaymentStatus:   PaymentStatusPending,
		DeliveryAddress: address,
		DeliveryPhone:   phone,
		CreatedAt:       time.Now().UTC(),
	}
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
	return o
}
