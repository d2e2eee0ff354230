// internal/domain/currency.go
package domain

import "github.com/shopspring/decimal"

// minorUnits maps ISO 4217 currency codes to the number of digits after the
// decimal point. Codes not listed use the common default of two.
var minorUnits = map[string]int32{
	"XOF": 0,
	"XAF": 0,
	"GNF": 0,
	"JPY": 0,
	"KRW": 0,
	"BHD": 3,
	"KWD": 3,
	"TND": 3,
}

// MinorUnits returns the number of minor-unit digits for a currency code.
func MinorUnits(code string) int32 {
	if mu, ok := minorUnits[code]; ok {
		return mu
	}
	return 2
}

// AmountTolerance returns the absolute tolerance allowed between a claimed
// checkout amount and the stored order totals: one minor-unit step of the
// currency (0.01 for USD, 1 for XOF).
func AmountTolerance(code string) decimal.Decimal {
	return decimal.New(1, -MinorUnits(code))
}

// SplitCommission splits a gross amount into the platform fee and the
// counterparty's net amount. The fee is rounded to the currency's minor unit
// so that fee + net always reproduces the gross exactly.
func SplitCommission(gross, rate decimal.Decimal, currency string) (fee, net decimal.Decimal) {
	fee = gross.Mul(rate).Round(MinorUnits(currency))
	net = gross.Sub(fee)
	return fee, net
}
