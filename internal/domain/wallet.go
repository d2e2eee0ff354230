// internal/domain/wallet.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// Wallet holds one party's running balance in a single currency. The balance
// always equals the replay of its transaction log; it is only ever changed by
// appending a transaction and applying the matching delta inside one database
// transaction.
type Wallet struct {
	ID        int64           `db:"id" json:"id"`
	OwnerID   string          `db:"owner_id" json:"owner_id"`
	Currency  string          `db:"currency" json:"currency"`
	Balance   decimal.Decimal `db:"balance" json:"balance"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// NewWallet creates an empty wallet for a party. Wallets are created lazily on
// the first credit or debit and never deleted.
func NewWallet(ownerID, currency string) *Wallet {
	now := time.Now().UTC()
	return &Wallet{
		OwnerID:   ownerID,
		Currency:  currency,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
