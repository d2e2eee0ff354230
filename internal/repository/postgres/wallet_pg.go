// internal/repository/postgres/wallet_pg.go
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
	"github.com/shopspring/decimal"
)

// WalletRepository implements repository.WalletRepository for PostgreSQL.
type WalletRepository struct{}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(db *sqlx.DB) repository.WalletRepository {
	return &WalletRepository{}
}

// CreateWallet inserts a new wallet using the provided DBExecutor.
func (r *WalletRepository) CreateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	query := `INSERT INTO wallets (owner_id, currency, balance, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := q.QueryRowContext(ctx, query, wallet.OwnerID, wallet.Currency, wallet.Balance, wallet.CreatedAt, wallet.UpdatedAt).Scan(&wallet.ID)
	if err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

// GetWalletByOwner retrieves a wallet by owner id and currency.
func (r *WalletRepository) GetWalletByOwner(ctx context.Context, q repository.DBExecutor, ownerID, currency string) (*domain.Wallet, error) {
	return r.getWalletByOwner(ctx, q, ownerID, currency, "")
}

// GetWalletByOwnerForUpdate locks the wallet row for the rest of the
// surrounding transaction. Concurrent credits and debits on the same wallet
// queue up here instead of losing updates.
func (r *WalletRepository) GetWalletByOwnerForUpdate(ctx context.Context, q repository.DBExecutor, ownerID, currency string) (*domain.Wallet, error) {
	return r.getWalletByOwner(ctx, q, ownerID, currency, " FOR UPDATE")
}

func (r *WalletRepository) getWalletByOwner(ctx context.Context, q repository.DBExecutor, ownerID, currency, suffix string) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT id, owner_id, currency, balance, created_at, updated_at FROM wallets WHERE owner_id = $1 AND currency = $2` + suffix
	err := q.GetContext(ctx, &wallet, query, ownerID, currency)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet for owner %s (%s): %w", ownerID, currency, err)
	}
	return &wallet, nil
}

// UpdateWalletBalance applies a signed delta to a wallet's balance.
func (r *WalletRepository) UpdateWalletBalance(ctx context.Context, q repository.DBExecutor, walletID int64, delta decimal.Decimal) error {
	query := `UPDATE wallets SET balance = balance + $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, delta, time.Now().UTC(), walletID)
	if err != nil {
		return fmt.Errorf("failed to update wallet balance for ID %d: %w", walletID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating wallet balance for ID %d: %w", walletID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no rows affected when updating wallet balance for ID %d: %w", walletID, util.ErrWalletNotFound)
	}
	return nil
}
