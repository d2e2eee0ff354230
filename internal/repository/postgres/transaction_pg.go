// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"fmt"

	"settleflow/internal/domain"
	"settleflow/internal/repository"

	"github.com/jmoiron/sqlx"
)

// WalletTransactionRepository implements repository.WalletTransactionRepository
// for PostgreSQL.
type WalletTransactionRepository struct{}

// NewWalletTransactionRepository creates a new WalletTransactionRepository.
func NewWalletTransactionRepository(db *sqlx.DB) repository.WalletTransactionRepository {
	return &WalletTransactionRepository{}
}

// CreateWalletTransaction appends a new ledger entry.
func (r *WalletTransactionRepository) CreateWalletTransaction(ctx context.Context, q repository.DBExecutor, tx *domain.WalletTransaction) error {
	query := `INSERT INTO wallet_transactions (wallet_id, type, amount, currency, reason, order_id, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		tx.WalletID,
		tx.Type,
		tx.Amount,
		tx.Currency,
		tx.Reason,
		tx.OrderID,
		tx.CreatedAt,
	).Scan(&tx.ID)
	if err != nil {
		return fmt.Errorf("failed to create wallet transaction: %w", err)
	}
	return nil
}

// ListWalletTransactions retrieves a paginated, newest-first slice of a
// wallet's ledger plus the total entry count.
func (r *WalletTransactionRepository) ListWalletTransactions(ctx context.Context, q repository.DBExecutor, walletID int64, limit, offset int) ([]domain.WalletTransaction, int64, error) {
	transactions := []domain.WalletTransaction{}

	query := `
		SELECT id, wallet_id, type, amount, currency, reason, order_id, created_at
		FROM wallet_transactions
		WHERE wallet_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	if err := q.SelectContext(ctx, &transactions, query, walletID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to fetch transactions for wallet %d: %w", walletID, err)
	}

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM wallet_transactions WHERE wallet_id = $1`
	if err := q.GetContext(ctx, &totalCount, countQuery, walletID); err != nil {
		return nil, 0, fmt.Errorf("failed to get total transaction count for wallet %d: %w", walletID, err)
	}

	return transactions, totalCount, nil
}
