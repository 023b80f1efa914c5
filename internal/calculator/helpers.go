package calculator

import (
	"fmt"

	"github.com/mmynk/settleup/internal/models"
)

// UnknownName is shown for participant IDs that have no display name.
const UnknownName = "Unknown"

// NameLookup returns a function resolving participant IDs to display names.
func NameLookup(participants []models.Participant) func(string) string {
	names := make(map[string]string, len(participants))
	for _, p := range participants {
		names[p.ID] = p.Name
	}
	return func(id string) string {
		if name, ok := names[id]; ok {
			return name
		}
		return UnknownName
	}
}

func fieldf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

// expenseRef identifies an expense in errors, falling back to its position.
func expenseRef(i int, expense *models.Expense) string {
	if expense.ID != "" {
		return expense.ID
	}
	return fmt.Sprintf("#%d", i)
}
