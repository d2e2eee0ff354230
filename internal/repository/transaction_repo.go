// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"settleflow/internal/domain"
)

// WalletTransactionRepository defines the interface for ledger entries. The
// log is append-only: there is deliberately no update or delete method.
type WalletTransactionRepository interface {
	// CreateWalletTransaction appends a new ledger entry.
	CreateWalletTransaction(ctx context.Context, q DBExecutor, tx *domain.WalletTransaction) error
	// ListWalletTransactions retrieves a wallet's entries newest-first, with
	// the total count for pagination.
	ListWalletTransactions(ctx context.Context, q DBExecutor, walletID int64, limit, offset int) ([]domain.WalletTransaction, int64, error)
}
