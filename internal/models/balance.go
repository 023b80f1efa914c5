package models

import "github.com/shopspring/decimal"

// Tolerance is the magnitude below which a balance or transfer is treated as zero.
var Tolerance = decimal.New(1, -2)

// Balance status labels.
const (
	StatusPositive = "positive"
	StatusNegative = "negative"
	StatusNeutral  = "neutral"
)

// Balances maps a participant ID to its net position.
// Positive = is owed money, negative = owes money.
type Balances map[string]decimal.Decimal

// Sum returns the total of all balances. For a valid expense set it is zero within Tolerance.
func (b Balances) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, v := range b {
		sum = sum.Add(v)
	}
	return sum
}

// IsSettled reports whether amount is within Tolerance of zero.
func IsSettled(amount decimal.Decimal) bool {
	return amount.Abs().LessThanOrEqual(Tolerance)
}

// BalanceStatus classifies a balance for display.
func BalanceStatus(amount decimal.Decimal) string {
	switch {
	case amount.GreaterThan(Tolerance):
		return StatusPositive
	case amount.LessThan(Tolerance.Neg()):
		return StatusNegative
	default:
		return StatusNeutral
	}
}
