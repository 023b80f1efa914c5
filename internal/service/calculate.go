package service

import (
	"log/slog"
	"time"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/models"
)

// settle runs the balance and settlement steps and records the outcome.
func settle(m *metrics.Manager, participants []models.Participant, expenses []models.Expense) (*models.Result, error) {
	start := time.Now()

	balances, err := calculator.ComputeBalances(participants, expenses)
	if err != nil {
		m.ObserveCalculation(metrics.OutcomeInvalid, len(participants), 0, time.Since(start))
		return nil, err
	}

	settlements := calculator.ResolveSettlements(balances, calculator.NameLookup(participants))
	m.ObserveCalculation(metrics.OutcomeOK, len(participants), len(settlements), time.Since(start))

	for _, s := range settlements {
		slog.Debug("Settlement",
			"from", s.From,
			"to", s.To,
			"amount", s.Amount.StringFixed(2),
		)
	}

	return &models.Result{
		Balances:     balances,
		Settlements:  settlements,
		CalculatedAt: time.Now().Unix(),
	}, nil
}
