package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/samber/lo"

	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

var _ apiconnect.SessionServiceHandler = (*SessionService)(nil)

// SessionService implements the Connect SessionService.
type SessionService struct {
	store   storage.Store
	metrics *metrics.Manager
}

// NewSessionService creates a new SessionService with the given storage backend. m may be nil.
func NewSessionService(store storage.Store, m *metrics.Manager) *SessionService {
	return &SessionService{store: store, metrics: m}
}

// CreateSession creates an empty session.
func (s *SessionService) CreateSession(ctx context.Context, req *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error) {
	session := &models.Session{Title: strings.TrimSpace(req.Msg.Title)}
	if err := s.store.CreateSession(ctx, session); err != nil {
		slog.Error("CreateSession failed", "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.SessionCreated()

	created, err := s.store.GetSession(ctx, session.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Session created", "session_id", created.ID, "title", created.Title)

	return connect.NewResponse(&api.CreateSessionResponse{Session: toAPISession(created)}), nil
}

// GetSession retrieves a session by ID.
func (s *SessionService) GetSession(ctx context.Context, req *connect.Request[api.GetSessionRequest]) (*connect.Response[api.GetSessionResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	session, err := s.store.GetSession(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetSessionResponse{Session: toAPISession(session)}), nil
}

// ListSessions retrieves all sessions.
func (s *SessionService) ListSessions(ctx context.Context, req *connect.Request[api.ListSessionsRequest]) (*connect.Response[api.ListSessionsResponse], error) {
	sessions, err := s.store.ListSessions(ctx)
	if err != nil {
		slog.Error("ListSessions failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("ListSessions successful", "count", len(sessions))

	return connect.NewResponse(&api.ListSessionsResponse{
		Sessions: lo.Map(sessions, func(session *models.Session, _ int) *api.Session { return toAPISession(session) }),
	}), nil
}

// DeleteSession removes a session by ID.
func (s *SessionService) DeleteSession(ctx context.Context, req *connect.Request[api.DeleteSessionRequest]) (*connect.Response[api.DeleteSessionResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.DeleteSession(ctx, req.Msg.SessionID); err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Session deleted", "session_id", req.Msg.SessionID)

	return connect.NewResponse(&api.DeleteSessionResponse{}), nil
}

// AddParticipant adds a person to a session. The ID is generated.
func (s *SessionService) AddParticipant(ctx context.Context, req *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	participant := &models.Participant{Name: strings.TrimSpace(req.Msg.Name)}
	if err := s.store.AddParticipant(ctx, req.Msg.SessionID, participant); err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Participant added",
		"session_id", req.Msg.SessionID,
		"participant_id", participant.ID,
	)

	p := toAPIParticipant(*participant)
	return connect.NewResponse(&api.AddParticipantResponse{Participant: &p}), nil
}

// RemoveParticipant removes a person, the expenses they paid, and their shares.
func (s *SessionService) RemoveParticipant(ctx context.Context, req *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.RemoveParticipantResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.RemoveParticipant(ctx, req.Msg.SessionID, req.Msg.ParticipantID); err != nil {
		return nil, toConnectError(err)
	}

	session, err := s.store.GetSession(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Participant removed",
		"session_id", session.ID,
		"participant_id", req.Msg.ParticipantID,
		"remaining_expenses", len(session.Expenses),
	)

	return connect.NewResponse(&api.RemoveParticipantResponse{Session: toAPISession(session)}), nil
}

// AddExpense records an expense in a session.
func (s *SessionService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	splitAmong := req.Msg.SplitAmong
	if req.Msg.SplitAll {
		session, err := s.store.GetSession(ctx, req.Msg.SessionID)
		if err != nil {
			return nil, toConnectError(err)
		}
		splitAmong = lo.Map(session.Participants, func(p models.Participant, _ int) string { return p.ID })
		if len(splitAmong) == 0 {
			return nil, toConnectError(&models.ValidationError{Field: "split_all", Reason: "session has no participants"})
		}
	} else if len(splitAmong) == 0 {
		return nil, toConnectError(&models.ValidationError{Field: "split_among", Reason: "is required"})
	}

	expense := &models.Expense{
		Description: strings.TrimSpace(req.Msg.Description),
		Amount:      req.Msg.Amount,
		PaidBy:      req.Msg.PaidBy,
		SplitAmong:  splitAmong,
	}
	if err := s.store.AddExpense(ctx, req.Msg.SessionID, expense); err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Expense added",
		"session_id", req.Msg.SessionID,
		"expense_id", expense.ID,
		"amount", expense.Amount.String(),
		"split_count", len(expense.SplitAmong),
	)

	e := toAPIExpense(*expense)
	return connect.NewResponse(&api.AddExpenseResponse{Expense: &e}), nil
}

// RemoveExpense removes one expense from a session.
func (s *SessionService) RemoveExpense(ctx context.Context, req *connect.Request[api.RemoveExpenseRequest]) (*connect.Response[api.RemoveExpenseResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.RemoveExpense(ctx, req.Msg.SessionID, req.Msg.ExpenseID); err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Expense removed", "session_id", req.Msg.SessionID, "expense_id", req.Msg.ExpenseID)

	return connect.NewResponse(&api.RemoveExpenseResponse{}), nil
}

// ClearExpenses removes every expense and the last result.
func (s *SessionService) ClearExpenses(ctx context.Context, req *connect.Request[api.ClearExpensesRequest]) (*connect.Response[api.ClearExpensesResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.ClearExpenses(ctx, req.Msg.SessionID); err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Expenses cleared", "session_id", req.Msg.SessionID)

	return connect.NewResponse(&api.ClearExpensesResponse{}), nil
}

// Calculate computes balances and settlements for the session's current
// participants and expenses, replacing any previous result.
func (s *SessionService) Calculate(ctx context.Context, req *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError(err)
	}
	sessionID := req.Msg.SessionID

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if len(session.Participants) == 0 {
		return nil, toConnectError(ErrNoParticipants)
	}
	if len(session.Expenses) == 0 {
		return nil, toConnectError(ErrNoExpenses)
	}

	result, err := settle(s.metrics, session.Participants, session.Expenses)
	if err != nil {
		slog.Error("Calculate failed - invalid session state", "session_id", sessionID, "error", err)
		return nil, toConnectError(err)
	}

	if err := s.store.SaveResult(ctx, sessionID, session.Version, result); err != nil {
		slog.Warn("Calculate result discarded", "session_id", sessionID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Calculate successful",
		"session_id", sessionID,
		"participants_count", len(session.Participants),
		"expenses_count", len(session.Expenses),
		"settlements_count", len(result.Settlements),
	)

	return connect.NewResponse(&api.CalculateResponse{
		Result: toAPIResult(result, session.Participants, session.TotalExpenses()),
	}), nil
}

// ResetCalculation discards the session's last result. Resetting a session
// without a result succeeds and changes nothing.
func (s *SessionService) ResetCalculation(ctx context.Context, req *connect.Request[api.ResetCalculationRequest]) (*connect.Response[api.ResetCalculationResponse], error) {
	if err := validateRequest(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.ClearResult(ctx, req.Msg.SessionID); err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Calculation reset", "session_id", req.Msg.SessionID)

	return connect.NewResponse(&api.ResetCalculationResponse{}), nil
}
