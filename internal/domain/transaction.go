// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// TransactionType defines the direction of a wallet transaction.
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

// WalletTransaction is one append-only entry in a wallet's ledger. Amount is
// always a positive magnitude; the type carries the sign. Entries are never
// mutated or removed once written.
type WalletTransaction struct {
	ID        int64           `db:"id" json:"id"`
	WalletID  int64           `db:"wallet_id" json:"wallet_id"`
	Type      TransactionType `db:"type" json:"type"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	Currency  string          `db:"currency" json:"currency"`
	Reason    string          `db:"reason" json:"reason"`
	OrderID   *string         `db:"order_id" json:"order_id"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// SignedAmount returns the balance delta this entry represents: +amount for
// credits, -amount for debits.
func (t *WalletTransaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// NewWalletTransaction creates a new ledger entry for a wallet.
func NewWalletTransaction(walletID int64, txType TransactionType, amount decimal.Decimal, currency, reason string, orderID *string) *WalletTransaction {
	return &WalletTransaction{
		WalletID:  walletID,
		Type:      txType,
		Amount:    amount,
		Currency:  currency,
		Reason:    reason,
		OrderID:   orderID,
		CreatedAt: time.Now().UTC(),
	}
}
