// internal/service/distribution.go
package service

import (
	"context"
	"fmt"

	"settleflow/internal/config"
	"settleflow/internal/domain"

	"github.com/rs/zerolog"
)

// Distributor splits a settled gross amount between the platform and the
// order's seller, then credits the wallet ledger. Distribute must only ever
// run once per order; the capture path guarantees that with its conditional
// payment-status transition.
type Distributor interface {
	Distribute(ctx context.Context, order *domain.Order) error
}

type distributor struct {
	wallets WalletService
	cfg     config.CommissionConfig
	logger  zerolog.Logger
}

// NewDistributor creates a Distributor with an explicit commission
// configuration, so settlement behavior is deterministic per call.
func NewDistributor(wallets WalletService, cfg config.CommissionConfig, logger zerolog.Logger) Distributor {
	return &distributor{
		wallets: wallets,
		cfg:     cfg,
		logger:  logger.With().Str("component", "distributor").Logger(),
	}
}

// Distribute credits the seller with the net amount and, when a platform
// wallet is configured, the platform with the commission.
func (d *distributor) Distribute(ctx context.Context, order *domain.Order) error {
	rate := d.cfg.RateFor(order.PaymentMethod)
	fee, net := domain.SplitCommission(order.Total, rate, order.Currency)

	reason := fmt.Sprintf("payment received for order %s", order.ID)
	if _, _, err := d.wallets.Credit(ctx, order.SellerID, net, order.Currency, reason, &order.ID); err != nil {
		return fmt.Errorf("distribute: failed to credit seller %s for order %s: %w", order.SellerID, order.ID, err)
	}

	if fee.IsPositive() {
		if d.cfg.PlatformOwnerID == "" {
			d.logger.Warn().
				Str("order_id", order.ID).
				Str("fee", fee.String()).
				Str("currency", order.Currency).
				Msg("commission not routed: no platform wallet configured")
		} else {
			feeReason := fmt.Sprintf("commission for order %s", order.ID)
			if _, _, err := d.wallets.Credit(ctx, d.cfg.PlatformOwnerID, fee, order.Currency, feeReason, &order.ID); err != nil {
				return fmt.Errorf("distribute: failed to credit platform for order %s: %w", order.ID, err)
			}
		}
	}

	d.logger.Info().
		Str("order_id", order.ID).
		Str("seller_id", order.SellerID).
		Str("gross", order.Total.String()).
		Str("fee", fee.String()).
		Str("net", net.String()).
		Msg("order settled")
	return nil
}
