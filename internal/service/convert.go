package service

import (
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/pkg/api"
)

func participantsFromAPI(ps []api.Participant) []models.Participant {
	return lo.Map(ps, func(p api.Participant, _ int) models.Participant {
		return models.Participant{ID: p.ID, Name: strings.TrimSpace(p.Name)}
	})
}

func expensesFromAPI(es []api.Expense) []models.Expense {
	return lo.Map(es, func(e api.Expense, _ int) models.Expense {
		return models.Expense{
			ID:          e.ID,
			Description: strings.TrimSpace(e.Description),
			Amount:      e.Amount,
			PaidBy:      e.PaidBy,
			SplitAmong:  e.SplitAmong,
		}
	})
}

func toAPIParticipant(p models.Participant) api.Participant {
	return api.Participant{ID: p.ID, Name: p.Name}
}

func toAPIExpense(e models.Expense) api.Expense {
	return api.Expense{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		PaidBy:      e.PaidBy,
		SplitAmong:  e.SplitAmong,
	}
}

func totalOf(expenses []models.Expense) decimal.Decimal {
	return lo.Reduce(expenses, func(sum decimal.Decimal, e models.Expense, _ int) decimal.Decimal {
		return sum.Add(e.Amount)
	}, decimal.Zero)
}

// toAPIResult presents a result. Balances are rounded to cents here and only here;
// summary entries follow participant order.
func toAPIResult(result *models.Result, participants []models.Participant, total decimal.Decimal) *api.Result {
	if result == nil {
		return nil
	}

	balances := make(map[string]decimal.Decimal, len(result.Balances))
	for id, amount := range result.Balances {
		balances[id] = amount.Round(2)
	}

	summary := make([]api.BalanceEntry, 0, len(participants))
	for _, p := range participants {
		amount, ok := result.Balances[p.ID]
		if !ok {
			continue
		}
		summary = append(summary, api.BalanceEntry{
			ParticipantID: p.ID,
			Name:          p.Name,
			Amount:        amount.Round(2),
			Status:        models.BalanceStatus(amount),
		})
	}

	settlements := lo.Map(result.Settlements, func(s models.Settlement, _ int) api.Settlement {
		return api.Settlement{From: s.From, FromID: s.FromID, To: s.To, ToID: s.ToID, Amount: s.Amount}
	})

	return &api.Result{
		Balances:      balances,
		Summary:       summary,
		Settlements:   settlements,
		TotalExpenses: total,
		CalculatedAt:  result.CalculatedAt,
	}
}

func toAPISession(s *models.Session) *api.Session {
	return &api.Session{
		ID:            s.ID,
		Title:         s.Title,
		Participants:  lo.Map(s.Participants, func(p models.Participant, _ int) api.Participant { return toAPIParticipant(p) }),
		Expenses:      lo.Map(s.Expenses, func(e models.Expense, _ int) api.Expense { return toAPIExpense(e) }),
		TotalExpenses: s.TotalExpenses(),
		Result:        toAPIResult(s.Result, s.Participants, s.TotalExpenses()),
		CreatedAt:     s.CreatedAt,
	}
}
