// internal/repository/wallet_repo.go
package repository

import (
	"context"

	"settleflow/internal/domain"

	"github.com/shopspring/decimal"
)

// WalletRepository defines the interface for wallet data operations.
type WalletRepository interface {
	// CreateWallet inserts a new wallet.
	CreateWallet(ctx context.Context, q DBExecutor, wallet *domain.Wallet) error
	// GetWalletByOwner retrieves a wallet by owner id and currency.
	GetWalletByOwner(ctx context.Context, q DBExecutor, ownerID, currency string) (*domain.Wallet, error)
	// GetWalletByOwnerForUpdate is GetWalletByOwner with a row lock; it must
	// be called inside a transaction and serializes concurrent balance
	// updates on the same wallet.
	GetWalletByOwnerForUpdate(ctx context.Context, q DBExecutor, ownerID, currency string) (*domain.Wallet, error)
	// UpdateWalletBalance applies a signed delta to a wallet's balance.
	UpdateWalletBalance(ctx context.Context, q DBExecutor, walletID int64, delta decimal.Decimal) error
}
