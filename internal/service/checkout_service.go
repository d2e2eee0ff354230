// internal/service/checkout_service.go
package service

import (
	"context"
	"fmt"

	"settleflow/internal/domain"
	"settleflow/internal/gateway"
	"settleflow/internal/notify"
	"settleflow/internal/repository"
	"settleflow/internal/util"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// CaptureFailure reports one order that could not be settled during a
// capture. Failures are reported, not swallowed, so callers can reconcile.
type CaptureFailure struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

// CheckoutCaptureResult is the outcome of a capture: the gateway's final
// status, the orders fully settled by this call, and the orders that failed.
// An order already settled by an earlier capture appears in neither list.
type CheckoutCaptureResult struct {
	Status  string           `json:"status"`
	Updated []string         `json:"updated_order_ids"`
	Failed  []CaptureFailure `json:"failed,omitempty"`
}

// CheckoutService is the single authority for moving orders from intent to
// pay to payment settled.
type CheckoutService interface {
	// InitiateCheckout validates the claimed amount against the stored
	// orders and creates a gateway transaction tagged with the order ids.
	// It writes nothing locally: orders stay unconfirmed until capture,
	// since the buyer may never complete payment.
	InitiateCheckout(ctx context.Context, orderIDs []string, amount decimal.Decimal, currency string) (string, error)
	// CaptureCheckout finalizes a gateway transaction and settles each
	// tagged order independently. Safe to retry: already-settled orders are
	// skipped and never re-credited.
	CaptureCheckout(ctx context.Context, transactionID string) (*CheckoutCaptureResult, error)
}

type checkoutService struct {
	dbExecutor  repository.DBExecutor
	orderRepo   repository.OrderRepository
	gateway     gateway.PaymentGateway
	distributor Distributor
	notifier    notify.Notifier
	logger      zerolog.Logger
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(
	dbExecutor repository.DBExecutor,
	orderRepo repository.OrderRepository,
	paymentGateway gateway.PaymentGateway,
	distributor Distributor,
	notifier notify.Notifier,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		dbExecutor:  dbExecutor,
		orderRepo:   orderRepo,
		gateway:     paymentGateway,
		distributor: distributor,
		notifier:    notifier,
		logger:      logger.With().Str("component", "checkout").Logger(),
	}
}

// InitiateCheckout validates and registers a checkout with the gateway.
func (s *checkoutService) InitiateCheckout(ctx context.Context, orderIDs []string, amount decimal.Decimal, currency string) (string, error) {
	if len(orderIDs) == 0 || currency == "" {
		return "", util.ErrInvalidInput
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return "", util.ErrInvalidInput
	}

	orders, err := s.orderRepo.GetOrdersByIDs(ctx, s.dbExecutor, orderIDs)
	if err != nil {
		return "", fmt.Errorf("initiate checkout: %w", err)
	}

	found := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		found[o.ID] = struct{}{}
	}
	for _, id := range orderIDs {
		if _, ok := found[id]; !ok {
			return "", fmt.Errorf("initiate checkout: order %s: %w", id, util.ErrOrderNotFound)
		}
	}

	total := decimal.Zero
	for _, o := range orders {
		if o.PaymentStatus == domain.PaymentStatusCompleted {
			return "", fmt.Errorf("initiate checkout: order %s: %w", o.ID, util.ErrAlreadyPaid)
		}
		if o.Currency != currency {
			return "", fmt.Errorf("initiate checkout: order %s is in %s: %w", o.ID, o.Currency, util.ErrCurrencyMismatch)
		}
		total = total.Add(o.Total)
	}

	tolerance := domain.AmountTolerance(currency)
	if total.Sub(amount).Abs().GreaterThan(tolerance) {
		return "", fmt.Errorf("initiate checkout: claimed %s, stored total %s: %w", amount, total, util.ErrAmountMismatch)
	}

	metadata := map[string]string{gateway.MetadataOrderIDs: gateway.JoinOrderIDs(orderIDs)}
	transactionID, err := s.gateway.CreateTransaction(ctx, amount, currency, metadata)
	if err != nil {
		return "", fmt.Errorf("initiate checkout: %w", err)
	}

	s.notifier.CheckoutCreated(ctx, transactionID, orderIDs, amount, currency)

	s.logger.Info().
		Str("transaction_id", transactionID).
		Strs("order_ids", orderIDs).
		Str("amount", amount.String()).
		Str("currency", currency).
		Msg("checkout initiated")
	return transactionID, nil
}

// CaptureCheckout finalizes the gateway transaction and settles each tagged
// order on its own: one bad order in a multi-order cart must not prevent the
// others from being marked paid.
func (s *checkoutService) CaptureCheckout(ctx context.Context, transactionID string) (*CheckoutCaptureResult, error) {
	if transactionID == "" {
		return nil, util.ErrInvalidInput
	}

	capture, err := s.gateway.CaptureTransaction(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("capture checkout: %w", err)
	}
	if capture.Status != gateway.StatusCompleted {
		return nil, fmt.Errorf("capture checkout: transaction %s has status %s: %w", transactionID, capture.Status, util.ErrGateway)
	}

	orderIDs := capture.OrderIDs()
	if len(orderIDs) == 0 {
		return nil, fmt.Errorf("capture checkout: transaction %s carries no order ids: %w", transactionID, util.ErrGateway)
	}

	result := &CheckoutCaptureResult{Status: capture.Status}
	for _, orderID := range orderIDs {
		if err := s.settleOrder(ctx, orderID, result); err != nil {
			s.logger.Error().Err(err).Str("order_id", orderID).Str("transaction_id", transactionID).Msg("order settlement failed")
			result.Failed = append(result.Failed, CaptureFailure{OrderID: orderID, Reason: err.Error()})
		}
	}

	s.logger.Info().
		Str("transaction_id", transactionID).
		Int("updated", len(result.Updated)).
		Int("failed", len(result.Failed)).
		Msg("checkout captured")
	return result, nil
}

// settleOrder marks one order paid and distributes its funds. The conditional
// MarkOrderPaid write is the idempotency guard: when it reports no change the
// order was settled by an earlier capture and the distributor must not run.
func (s *checkoutService) settleOrder(ctx context.Context, orderID string, result *CheckoutCaptureResult) error {
	order, err := s.orderRepo.GetOrderByID(ctx, s.dbExecutor, orderID)
	if err != nil {
		return err
	}

	changed, err := s.orderRepo.MarkOrderPaid(ctx, s.dbExecutor, orderID)
	if err != nil {
		return err
	}
	if !changed {
		s.logger.Info().Str("order_id", orderID).Msg("order already settled, skipping")
		return nil
	}

	if err := s.distributor.Distribute(ctx, order); err != nil {
		return err
	}

	result.Updated = append(result.Updated, orderID)
	return nil
}
