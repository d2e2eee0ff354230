// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrInvalidInput      = errors.New("invalid input provided")
	ErrNotFound          = errors.New("resource not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrAlreadyPaid       = errors.New("order already paid")
	ErrAlreadyClaimed    = errors.New("order already claimed")
	ErrAmountMismatch    = errors.New("claimed amount does not match order totals")
	ErrCurrencyMismatch  = errors.New("currency mismatch")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrGateway           = errors.New("payment gateway error")
)

// IsError reports whether err wraps target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
