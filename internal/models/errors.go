package models

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks caller-input problems. Match with errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrUnknownParticipant marks references to participants that are not in the set.
	ErrUnknownParticipant = errors.New("unknown participant")
)

// ValidationError names the offending field and the broken rule.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// UnknownParticipantError reports a dangling participant reference in an expense.
type UnknownParticipantError struct {
	ParticipantID string
	ExpenseID     string
	// Field is "paid_by" or "split_among".
	Field string
}

func (e *UnknownParticipantError) Error() string {
	return fmt.Sprintf("expense %q: %s references unknown participant %q", e.ExpenseID, e.Field, e.ParticipantID)
}

func (e *UnknownParticipantError) Unwrap() error { return ErrUnknownParticipant }
