package models

import "github.com/shopspring/decimal"

// Settlement represents a payment instruction that reduces outstanding balances.
// It is a report, not a stored entity.
type Settlement struct {
	// From is the display name of the debtor who should pay.
	From string

	// FromID is the participant ID behind From.
	FromID string

	// To is the display name of the creditor who should receive the payment.
	To string

	// ToID is the participant ID behind To.
	ToID string

	// Amount is the payment amount, rounded to two decimal places.
	Amount decimal.Decimal
}

// Result is the output of one calculation. Each new calculation replaces it entirely.
type Result struct {
	Balances     Balances
	Settlements  []Settlement
	CalculatedAt int64
}
