package models

import "github.com/shopspring/decimal"

// Expense represents one shared cost.
// Expenses are immutable inputs to a calculation; the engine never mutates them.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format when generated).
	ID string

	// Description is the human-readable label (e.g., "Dinner", "Taxi").
	Description string

	// Amount is the total paid. Must be positive.
	Amount decimal.Decimal

	// PaidBy is the ID of the participant who advanced the money.
	PaidBy string

	// SplitAmong is the set of participant IDs sharing the cost equally.
	// The payer may be part of it.
	SplitAmong []string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}
