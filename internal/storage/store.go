// Package storage provides abstractions for session storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/settleup/internal/models"
)

var (
	// ErrNotFound is returned when a session, participant or expense does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a result is saved for a session that changed
	// after the result was computed.
	ErrConflict = errors.New("session changed since calculation")

	// ErrLimitReached is returned when the store holds its maximum number of sessions.
	ErrLimitReached = errors.New("session limit reached")
)

// Store defines the interface for session storage operations.
// Implementations hand out copies: callers never share mutable state with the store.
type Store interface {
	// CreateSession stores a new, empty session.
	// The session.ID and session.CreatedAt fields are populated by the store when unset.
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSession returns a snapshot of the session.
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)

	// ListSessions returns snapshots of all sessions, oldest first.
	ListSessions(ctx context.Context) ([]*models.Session, error)

	// DeleteSession removes a session.
	DeleteSession(ctx context.Context, sessionID string) error

	// AddParticipant appends a participant. participant.ID is populated when unset.
	AddParticipant(ctx context.Context, sessionID string, participant *models.Participant) error

	// RemoveParticipant removes a participant, the expenses they paid, and their
	// share in other expenses. Expenses left with nobody to split among are removed.
	RemoveParticipant(ctx context.Context, sessionID, participantID string) error

	// AddExpense appends an expense. Payer and beneficiaries must be participants
	// of the session. expense.ID and expense.CreatedAt are populated when unset.
	AddExpense(ctx context.Context, sessionID string, expense *models.Expense) error

	// RemoveExpense removes an expense.
	RemoveExpense(ctx context.Context, sessionID, expenseID string) error

	// ClearExpenses removes every expense and the last result.
	ClearExpenses(ctx context.Context, sessionID string) error

	// SaveResult replaces the session's result. It fails with ErrConflict when
	// the session's version is no longer version.
	SaveResult(ctx context.Context, sessionID string, version int64, result *models.Result) error

	// ClearResult discards the session's result. Clearing an empty result is a no-op.
	ClearResult(ctx context.Context, sessionID string) error

	// Close releases any resources held by the store.
	Close() error
}
