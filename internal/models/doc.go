// Package models defines the core domain models for settleup.
//
// # Inputs
//
// The settlement engine consumes two kinds of values supplied by the caller:
//   - Participant: a person tracked within one run, keyed by an opaque ID
//   - Expense: one shared cost, paid by one participant and split equally among a set of others
//
// # Outputs
//
//   - Balances: net position per participant (positive = owed, negative = owes)
//   - Settlement: one directed payment instruction, reported by display name
//
// # Design Principles
//
// 1. **Values, not references**: every calculation is a pure function of its inputs
// 2. **IDs as keys**: names are informational and never used to look anything up
// 3. **Decimal money**: amounts use shopspring/decimal; rounding happens only when presenting
//
// Session groups participants, expenses and the last result into the workspace
// that the surrounding application edits between calculations.
package models
