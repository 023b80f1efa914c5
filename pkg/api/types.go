// Package api defines the JSON messages exchanged with the settleup services.
//
// Amounts are decimals. They are accepted as JSON numbers or strings and
// always emitted as strings so no precision is lost in transit.
package api

import "github.com/shopspring/decimal"

// Participant is a person in a split.
type Participant struct {
	ID   string `json:"id" validate:"notblank"`
	Name string `json:"name" validate:"notblank"`
}

// Expense is one shared cost.
type Expense struct {
	ID          string          `json:"id,omitempty"`
	Description string          `json:"description" validate:"notblank"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
	PaidBy      string          `json:"paid_by" validate:"notblank"`
	SplitAmong  []string        `json:"split_among" validate:"min=1,unique,dive,notblank"`
}

// Settlement is one payment instruction.
type Settlement struct {
	From   string          `json:"from"`
	FromID string          `json:"from_id"`
	To     string          `json:"to"`
	ToID   string          `json:"to_id"`
	Amount decimal.Decimal `json:"amount"`
}

// BalanceEntry presents one participant's balance.
type BalanceEntry struct {
	ParticipantID string          `json:"participant_id"`
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
	// Status is "positive", "negative" or "neutral".
	Status string `json:"status"`
}

// Result is the outcome of one calculation.
type Result struct {
	// Balances maps participant ID to net balance, rounded to cents.
	Balances      map[string]decimal.Decimal `json:"balances"`
	Summary       []BalanceEntry             `json:"summary"`
	Settlements   []Settlement               `json:"settlements"`
	TotalExpenses decimal.Decimal            `json:"total_expenses"`
	CalculatedAt  int64                      `json:"calculated_at,omitempty"`
}

// SettleRequest carries everything needed for a stateless calculation.
type SettleRequest struct {
	Participants []Participant `json:"participants" validate:"min=1,unique=ID,dive"`
	Expenses     []Expense     `json:"expenses" validate:"dive"`
}

// SettleResponse is the result of a stateless calculation.
type SettleResponse struct {
	Result
}

// Session is the working set of participants and expenses.
type Session struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Participants  []Participant   `json:"participants"`
	Expenses      []Expense       `json:"expenses"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Result        *Result         `json:"result,omitempty"`
	CreatedAt     int64           `json:"created_at"`
}

type CreateSessionRequest struct {
	Title string `json:"title,omitempty"`
}

type CreateSessionResponse struct {
	Session *Session `json:"session"`
}

type GetSessionRequest struct {
	SessionID string `json:"session_id" validate:"notblank"`
}

type GetSessionResponse struct {
	Session *Session `json:"session"`
}

type ListSessionsRequest struct{}

type ListSessionsResponse struct {
	Sessions []*Session `json:"sessions"`
}

type DeleteSessionRequest struct {
	SessionID string `json:"session_id" validate:"notblank"`
}

type DeleteSessionResponse struct{}

type AddParticipantRequest struct {
	SessionID string `json:"session_id" validate:"notblank"`
	Name      string `json:"name" validate:"notblank"`
}

type AddParticipantResponse struct {
	Participant *Participant `json:"participant"`
}

type RemoveParticipantRequest struct {
	SessionID     string `json:"session_id" validate:"notblank"`
	ParticipantID string `json:"participant_id" validate:"notblank"`
}

type RemoveParticipantResponse struct {
	Session *Session `json:"session"`
}

// AddExpenseRequest adds an expense to a session.
// With SplitAll set, the expense is split among every current participant
// and SplitAmong is ignored.
type AddExpenseRequest struct {
	SessionID   string          `json:"session_id" validate:"notblank"`
	Description string          `json:"description" validate:"notblank"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
	PaidBy      string          `json:"paid_by" validate:"notblank"`
	SplitAmong  []string        `json:"split_among,omitempty" validate:"required_without=SplitAll,unique,dive,notblank"`
	SplitAll    bool            `json:"split_all,omitempty"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type RemoveExpenseRequest struct {
	SessionID string `json:"session_id" validate:"notblank"`
	ExpenseID string `json:"expense_id" validate:"notblank"`
}

type RemoveExpenseResponse struct{}

type ClearExpensesRequest struct {
	SessionID string `json:"session_id" validate:"notblank"`
}

type ClearExpensesResponse struct{}

type CalculateRequest struct {
	SessionID string `json:"session_id" validate:"notblank"`
}

type CalculateResponse struct {
	Result *Result `json:"result"`
}

type ResetCalculationRequest struct {
	SessionID string `json:"session_id" validate:"notblank"`
}

type ResetCalculationResponse struct{}
