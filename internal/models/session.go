package models

import "github.com/shopspring/decimal"

// Session is the working set the surrounding application edits between calculations.
// It is held in memory only.
type Session struct {
	// ID is the unique identifier for the session (UUID format).
	ID string

	// Title is the display name. Auto-generated from participants when empty.
	Title string

	Participants []Participant
	Expenses     []Expense

	// Result is the last calculation, or nil when none has been run
	// since the session was created, reset, or changed.
	Result *Result

	// Version increases on every change to participants or expenses.
	Version int64

	// CreatedAt is the Unix timestamp when the session was created.
	CreatedAt int64
}

// TotalExpenses returns the sum of all expense amounts.
func (s *Session) TotalExpenses() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.Expenses {
		total = total.Add(e.Amount)
	}
	return total
}
