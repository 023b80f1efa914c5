package models

// Participant represents a person taking part in a split.
type Participant struct {
	// ID is the unique identifier for the participant within a run (UUID format when generated).
	ID string

	// Name is the display name. It is informational only and may repeat.
	Name string
}
