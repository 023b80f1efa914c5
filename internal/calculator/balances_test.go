package calculator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/models"
)

var abc = []models.Participant{
	{ID: "a", Name: "Alice"},
	{ID: "b", Name: "Bob"},
	{ID: "c", Name: "Charlie"},
}

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeBalances(t *testing.T) {
	tests := []struct {
		name         string
		participants []models.Participant
		expenses     []models.Expense
		wantErr      error
		want         map[string]string
	}{
		{
			name:         "dinner split three ways",
			participants: abc,
			expenses: []models.Expense{
				{ID: "e1", Description: "Dinner", Amount: amt("90"), PaidBy: "a", SplitAmong: []string{"a", "b", "c"}},
			},
			want: map[string]string{"a": "60", "b": "-30", "c": "-30"},
		},
		{
			name:         "two people, payer included",
			participants: abc[:2],
			expenses: []models.Expense{
				{ID: "e1", Description: "Taxi", Amount: amt("10"), PaidBy: "a", SplitAmong: []string{"a", "b"}},
			},
			want: map[string]string{"a": "5", "b": "-5"},
		},
		{
			name:         "payer not among beneficiaries",
			participants: abc,
			expenses: []models.Expense{
				{ID: "e1", Description: "Gift", Amount: amt("40"), PaidBy: "c", SplitAmong: []string{"a", "b"}},
			},
			want: map[string]string{"a": "-20", "b": "-20", "c": "40"},
		},
		{
			name:         "expenses that cancel out",
			participants: abc,
			expenses: []models.Expense{
				{ID: "e1", Description: "Lunch", Amount: amt("30"), PaidBy: "a", SplitAmong: []string{"a", "b", "c"}},
				{ID: "e2", Description: "Coffee", Amount: amt("30"), PaidBy: "b", SplitAmong: []string{"a", "b", "c"}},
				{ID: "e3", Description: "Snacks", Amount: amt("30"), PaidBy: "c", SplitAmong: []string{"a", "b", "c"}},
			},
			want: map[string]string{"a": "0", "b": "0", "c": "0"},
		},
		{
			name:         "participant without expenses starts at zero",
			participants: abc,
			expenses:     nil,
			want:         map[string]string{"a": "0", "b": "0", "c": "0"},
		},
		{
			name:         "unknown beneficiary",
			participants: abc[:2],
			expenses: []models.Expense{
				{ID: "e1", Description: "Dinner", Amount: amt("90"), PaidBy: "a", SplitAmong: []string{"a", "z"}},
			},
			wantErr: models.ErrUnknownParticipant,
		},
		{
			name:         "unknown payer",
			participants: abc,
			expenses: []models.Expense{
				{ID: "e1", Description: "Dinner", Amount: amt("90"), PaidBy: "z", SplitAmong: []string{"a"}},
			},
			wantErr: models.ErrUnknownParticipant,
		},
		{
			name:         "zero amount",
			participants: abc,
			expenses: []models.Expense{
				{ID: "e1", Description: "Nothing", Amount: decimal.Zero, PaidBy: "a", SplitAmong: []string{"a"}},
			},
			wantErr: models.ErrValidation,
		},
		{
			name:         "empty split",
			participants: abc,
			expenses: []models.Expense{
				{ID: "e1", Description: "Nobody", Amount: amt("5"), PaidBy: "a"},
			},
			wantErr: models.ErrValidation,
		},
		{
			name:         "duplicate beneficiary",
			participants: abc,
			expenses: []models.Expense{
				{ID: "e1", Description: "Twice", Amount: amt("5"), PaidBy: "a", SplitAmong: []string{"b", "b"}},
			},
			wantErr: models.ErrValidation,
		},
		{
			name:         "duplicate participant id",
			participants: []models.Participant{{ID: "a", Name: "Alice"}, {ID: "a", Name: "Another Alice"}},
			wantErr:      models.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances, err := ComputeBalances(tt.participants, tt.expenses)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ComputeBalances() error = %v, want %v", err, tt.wantErr)
				}
				if balances != nil {
					t.Errorf("expected no balances on error, got %v", balances)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComputeBalances() unexpected error: %v", err)
			}
			if len(balances) != len(tt.want) {
				t.Fatalf("got %d balances, want %d", len(balances), len(tt.want))
			}
			for id, want := range tt.want {
				if got := balances[id]; !got.Equal(amt(want)) {
					t.Errorf("balance[%s] = %s, want %s", id, got, want)
				}
			}
		})
	}
}

func TestComputeBalancesUnknownParticipantDetails(t *testing.T) {
	_, err := ComputeBalances(abc[:1], []models.Expense{
		{ID: "e7", Description: "Dinner", Amount: amt("10"), PaidBy: "a", SplitAmong: []string{"a", "ghost"}},
	})

	var unknown *models.UnknownParticipantError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownParticipantError, got %v", err)
	}
	if unknown.ParticipantID != "ghost" || unknown.ExpenseID != "e7" || unknown.Field != "split_among" {
		t.Errorf("unexpected error details: %+v", unknown)
	}
}

func TestComputeBalancesZeroSum(t *testing.T) {
	// 10 split three ways does not terminate in decimal.
	expenses := []models.Expense{
		{ID: "e1", Amount: amt("10"), PaidBy: "a", SplitAmong: []string{"a", "b", "c"}},
		{ID: "e2", Amount: amt("7.01"), PaidBy: "b", SplitAmong: []string{"a", "c"}},
		{ID: "e3", Amount: amt("100"), PaidBy: "c", SplitAmong: []string{"a", "b", "c"}},
	}

	balances, err := ComputeBalances(abc, expenses)
	if err != nil {
		t.Fatalf("ComputeBalances() unexpected error: %v", err)
	}
	if sum := balances.Sum(); !models.IsSettled(sum) {
		t.Errorf("sum of balances = %s, want 0 within tolerance", sum)
	}
	// Full precision is kept; rounding is left to presentation.
	if balances["b"].Equal(balances["b"].Round(2)) {
		t.Errorf("expected unrounded balance for b, got %s", balances["b"])
	}
}

func TestComputeBalancesDoesNotMutateInput(t *testing.T) {
	split := []string{"a", "b"}
	expenses := []models.Expense{{ID: "e1", Amount: amt("10"), PaidBy: "a", SplitAmong: split}}

	if _, err := ComputeBalances(abc, expenses); err != nil {
		t.Fatalf("ComputeBalances() unexpected error: %v", err)
	}
	if !expenses[0].Amount.Equal(amt("10")) || len(split) != 2 || split[0] != "a" || split[1] != "b" {
		t.Errorf("input expense was modified: %+v", expenses[0])
	}
}
