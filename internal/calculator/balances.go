// Package calculator turns expenses into balances and balances into settlements.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/models"
)

// ComputeBalances computes the net balance of every participant across expenses.
//
// Algorithm:
// - Every participant starts at zero
// - For each expense, in order: payer +amount, each beneficiary -amount/len(split)
// - A payer who is also a beneficiary receives both adjustments
//
// All expenses are checked before any balance is touched, so an invalid
// expense yields an error and no partial result.
func ComputeBalances(participants []models.Participant, expenses []models.Expense) (models.Balances, error) {
	balances := make(models.Balances, len(participants))
	for i, p := range participants {
		if p.ID == "" {
			return nil, &models.ValidationError{Field: fieldf("participants[%d].id", i), Reason: "required"}
		}
		if _, exists := balances[p.ID]; exists {
			return nil, &models.ValidationError{Field: fieldf("participants[%d].id", i), Reason: "duplicate participant id " + p.ID}
		}
		balances[p.ID] = decimal.Zero
	}

	for i := range expenses {
		if err := checkExpense(i, &expenses[i], balances); err != nil {
			return nil, err
		}
	}

	for _, expense := range expenses {
		share := expense.Amount.Div(decimal.NewFromInt(int64(len(expense.SplitAmong))))

		balances[expense.PaidBy] = balances[expense.PaidBy].Add(expense.Amount)
		for _, id := range expense.SplitAmong {
			balances[id] = balances[id].Sub(share)
		}
	}

	return balances, nil
}

// checkExpense re-validates what the calculator depends on: a positive amount,
// a non-empty set of beneficiaries, and references to known participants.
func checkExpense(i int, expense *models.Expense, known models.Balances) error {
	if !expense.Amount.IsPositive() {
		return &models.ValidationError{Field: fieldf("expenses[%d].amount", i), Reason: "must be greater than zero"}
	}
	if len(expense.SplitAmong) == 0 {
		return &models.ValidationError{Field: fieldf("expenses[%d].split_among", i), Reason: "must not be empty"}
	}
	if _, ok := known[expense.PaidBy]; !ok {
		return &models.UnknownParticipantError{ParticipantID: expense.PaidBy, ExpenseID: expenseRef(i, expense), Field: "paid_by"}
	}

	seen := make(map[string]struct{}, len(expense.SplitAmong))
	for _, id := range expense.SplitAmong {
		if _, ok := known[id]; !ok {
			return &models.UnknownParticipantError{ParticipantID: id, ExpenseID: expenseRef(i, expense), Field: "split_among"}
		}
		if _, dup := seen[id]; dup {
			return &models.ValidationError{Field: fieldf("expenses[%d].split_among", i), Reason: "duplicate participant id " + id}
		}
		seen[id] = struct{}{}
	}
	return nil
}
