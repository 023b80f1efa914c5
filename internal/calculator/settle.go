package calculator

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/models"
)

// position is an open balance awaiting settlement. remaining is always non-negative.
type position struct {
	id        string
	remaining decimal.Decimal
}

// ResolveSettlements reduces balances to a list of transfers that zero them out.
//
// Algorithm (greedy, not a minimum-transfer solver):
// - Debtors have balance < -Tolerance, creditors > +Tolerance; the rest are settled
// - Both lists sorted by magnitude descending, ties by participant ID
// - Repeatedly match the current debtor with the current creditor for min(owed, due)
// - Move past a side once its remaining amount drops below Tolerance
//
// Amounts are rounded to cents when emitted, never while matching.
// nameOf may be nil, in which case participant IDs are reported as names.
func ResolveSettlements(balances models.Balances, nameOf func(string) string) []models.Settlement {
	if nameOf == nil {
		nameOf = func(id string) string { return id }
	}

	var debtors, creditors []position
	for id, balance := range balances {
		if balance.LessThan(models.Tolerance.Neg()) {
			debtors = append(debtors, position{id: id, remaining: balance.Abs()})
		} else if balance.GreaterThan(models.Tolerance) {
			creditors = append(creditors, position{id: id, remaining: balance})
		}
	}
	sortPositions(debtors)
	sortPositions(creditors)

	settlements := make([]models.Settlement, 0, max(len(debtors), len(creditors)))
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := decimal.Min(debtor.remaining, creditor.remaining)
		if amount.GreaterThan(models.Tolerance) {
			settlements = append(settlements, models.Settlement{
				From:   nameOf(debtor.id),
				FromID: debtor.id,
				To:     nameOf(creditor.id),
				ToID:   creditor.id,
				Amount: amount.Round(2),
			})
		}

		debtor.remaining = debtor.remaining.Sub(amount)
		creditor.remaining = creditor.remaining.Sub(amount)

		if debtor.remaining.LessThan(models.Tolerance) {
			i++
		}
		if creditor.remaining.LessThan(models.Tolerance) {
			j++
		}
	}

	return settlements
}

// sortPositions orders by remaining amount descending, then by ID ascending.
func sortPositions(ps []position) {
	slices.SortFunc(ps, func(a, b position) int {
		if c := b.remaining.Cmp(a.remaining); c != 0 {
			return c
		}
		return strings.Compare(a.id, b.id)
	})
}
