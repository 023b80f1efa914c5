package service

import (
	"context"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

func createSession(t *testing.T, client apiconnect.SessionServiceClient, title string) *api.Session {
	t.Helper()
	resp, err := client.CreateSession(context.Background(), connect.NewRequest(&api.CreateSessionRequest{Title: title}))
	require.NoError(t, err)
	return resp.Msg.Session
}

func addParticipant(t *testing.T, client apiconnect.SessionServiceClient, sessionID, name string) string {
	t.Helper()
	resp, err := client.AddParticipant(context.Background(), connect.NewRequest(&api.AddParticipantRequest{
		SessionID: sessionID,
		Name:      name,
	}))
	require.NoError(t, err)
	return resp.Msg.Participant.ID
}

func addExpense(t *testing.T, client apiconnect.SessionServiceClient, req *api.AddExpenseRequest) string {
	t.Helper()
	resp, err := client.AddExpense(context.Background(), connect.NewRequest(req))
	require.NoError(t, err)
	return resp.Msg.Expense.ID
}

func getSession(t *testing.T, client apiconnect.SessionServiceClient, sessionID string) *api.Session {
	t.Helper()
	resp, err := client.GetSession(context.Background(), connect.NewRequest(&api.GetSessionRequest{SessionID: sessionID}))
	require.NoError(t, err)
	return resp.Msg.Session
}

func TestSessionLifecycle(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()
	client := ts.Session

	session := createSession(t, client, "Ski trip")
	assert.Equal(t, "Ski trip", session.Title)
	assert.NotEmpty(t, session.ID)

	alice := addParticipant(t, client, session.ID, "Alice")
	bob := addParticipant(t, client, session.ID, " Bob ")
	carol := addParticipant(t, client, session.ID, "Carol")

	addExpense(t, client, &api.AddExpenseRequest{
		SessionID:   session.ID,
		Description: "Dinner",
		Amount:      dec("90"),
		PaidBy:      alice,
		SplitAll:    true,
	})

	resp, err := client.Calculate(ctx, connect.NewRequest(&api.CalculateRequest{SessionID: session.ID}))
	require.NoError(t, err)

	result := resp.Msg.Result
	require.NotNil(t, result)
	assert.Equal(t, "60.00", result.Balances[alice].StringFixed(2))
	assert.Equal(t, "-30.00", result.Balances[bob].StringFixed(2))
	assert.Equal(t, "-30.00", result.Balances[carol].StringFixed(2))
	assert.Equal(t, "90.00", result.TotalExpenses.StringFixed(2))
	require.Len(t, result.Settlements, 2)
	for _, s := range result.Settlements {
		assert.Equal(t, "Alice", s.To)
		assert.Equal(t, "30.00", s.Amount.StringFixed(2))
	}

	stored := getSession(t, client, session.ID)
	require.NotNil(t, stored.Result, "result should be kept on the session")
	assert.Equal(t, "Bob", stored.Participants[1].Name)
	assert.Len(t, stored.Result.Settlements, 2)
}

func TestCreateSession_GeneratedTitle(t *testing.T) {
	ts := setupTestServer(t)

	session := createSession(t, ts.Session, "")
	assert.True(t, strings.HasPrefix(session.Title, "Session - "), "got %q", session.Title)

	addParticipant(t, ts.Session, session.ID, "Alice")
	addParticipant(t, ts.Session, session.ID, "Bob")

	assert.Equal(t, "Split with Alice, Bob", getSession(t, ts.Session, session.ID).Title)
}

func TestGetSession_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	_, err := ts.Session.GetSession(context.Background(), connect.NewRequest(&api.GetSessionRequest{SessionID: "missing"}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestListAndDeleteSessions(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	first := createSession(t, ts.Session, "First")
	createSession(t, ts.Session, "Second")

	list, err := ts.Session.ListSessions(ctx, connect.NewRequest(&api.ListSessionsRequest{}))
	require.NoError(t, err)
	require.Len(t, list.Msg.Sessions, 2)

	_, err = ts.Session.DeleteSession(ctx, connect.NewRequest(&api.DeleteSessionRequest{SessionID: first.ID}))
	require.NoError(t, err)

	list, err = ts.Session.ListSessions(ctx, connect.NewRequest(&api.ListSessionsRequest{}))
	require.NoError(t, err)
	require.Len(t, list.Msg.Sessions, 1)
	assert.Equal(t, "Second", list.Msg.Sessions[0].Title)

	_, err = ts.Session.DeleteSession(ctx, connect.NewRequest(&api.DeleteSessionRequest{SessionID: first.ID}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestCalculate_Preconditions(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	session := createSession(t, ts.Session, "Empty")

	_, err := ts.Session.Calculate(ctx, connect.NewRequest(&api.CalculateRequest{SessionID: session.ID}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))
	assert.Contains(t, err.Error(), "participant")

	addParticipant(t, ts.Session, session.ID, "Alice")

	_, err = ts.Session.Calculate(ctx, connect.NewRequest(&api.CalculateRequest{SessionID: session.ID}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))
	assert.Contains(t, err.Error(), "expense")

	_, err = ts.Session.Calculate(ctx, connect.NewRequest(&api.CalculateRequest{SessionID: "missing"}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestAddExpense_Invalid(t *testing.T) {
	ts := setupTestServer(t)
	session := createSession(t, ts.Session, "Trip")
	alice := addParticipant(t, ts.Session, session.ID, "Alice")

	tests := []struct {
		name     string
		req      *api.AddExpenseRequest
		wantCode connect.Code
	}{
		{
			name:     "unknown payer",
			req:      &api.AddExpenseRequest{SessionID: session.ID, Description: "Taxi", Amount: dec("10"), PaidBy: "zed", SplitAmong: []string{alice}},
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name:     "unknown beneficiary",
			req:      &api.AddExpenseRequest{SessionID: session.ID, Description: "Taxi", Amount: dec("10"), PaidBy: alice, SplitAmong: []string{"zed"}},
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name:     "zero amount",
			req:      &api.AddExpenseRequest{SessionID: session.ID, Description: "Taxi", Amount: dec("0"), PaidBy: alice, SplitAmong: []string{alice}},
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name:     "missing split",
			req:      &api.AddExpenseRequest{SessionID: session.ID, Description: "Taxi", Amount: dec("10"), PaidBy: alice},
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name:     "empty split",
			req:      &api.AddExpenseRequest{SessionID: session.ID, Description: "Taxi", Amount: dec("10"), PaidBy: alice, SplitAmong: []string{}},
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name:     "duplicate beneficiary",
			req:      &api.AddExpenseRequest{SessionID: session.ID, Description: "Taxi", Amount: dec("10"), PaidBy: alice, SplitAmong: []string{alice, alice}},
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name:     "blank description",
			req:      &api.AddExpenseRequest{SessionID: session.ID, Description: " ", Amount: dec("10"), PaidBy: alice, SplitAll: true},
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name:     "unknown session",
			req:      &api.AddExpenseRequest{SessionID: "missing", Description: "Taxi", Amount: dec("10"), PaidBy: alice, SplitAll: true},
			wantCode: connect.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.Session.AddExpense(context.Background(), connect.NewRequest(tt.req))
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, connect.CodeOf(err))
		})
	}

	assert.Empty(t, getSession(t, ts.Session, session.ID).Expenses)
}

func TestMutationsInvalidateResult(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	session := createSession(t, ts.Session, "Trip")
	alice := addParticipant(t, ts.Session, session.ID, "Alice")
	bob := addParticipant(t, ts.Session, session.ID, "Bob")
	expenseID := addExpense(t, ts.Session, &api.AddExpenseRequest{
		SessionID: session.ID, Description: "Fuel", Amount: dec("50"), PaidBy: bob, SplitAll: true,
	})

	calculate := func(t *testing.T) {
		t.Helper()
		_, err := ts.Session.Calculate(ctx, connect.NewRequest(&api.CalculateRequest{SessionID: session.ID}))
		require.NoError(t, err)
		require.NotNil(t, getSession(t, ts.Session, session.ID).Result)
	}

	t.Run("adding an expense", func(t *testing.T) {
		calculate(t)
		addExpense(t, ts.Session, &api.AddExpenseRequest{
			SessionID: session.ID, Description: "Snacks", Amount: dec("10"), PaidBy: alice, SplitAmong: []string{alice, bob},
		})
		assert.Nil(t, getSession(t, ts.Session, session.ID).Result)
	})

	t.Run("adding a participant", func(t *testing.T) {
		calculate(t)
		addParticipant(t, ts.Session, session.ID, "Carol")
		assert.Nil(t, getSession(t, ts.Session, session.ID).Result)
	})

	t.Run("removing an expense", func(t *testing.T) {
		calculate(t)
		_, err := ts.Session.RemoveExpense(ctx, connect.NewRequest(&api.RemoveExpenseRequest{SessionID: session.ID, ExpenseID: expenseID}))
		require.NoError(t, err)
		assert.Nil(t, getSession(t, ts.Session, session.ID).Result)

		_, err = ts.Session.RemoveExpense(ctx, connect.NewRequest(&api.RemoveExpenseRequest{SessionID: session.ID, ExpenseID: expenseID}))
		assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
	})

	t.Run("clearing expenses", func(t *testing.T) {
		calculate(t)
		_, err := ts.Session.ClearExpenses(ctx, connect.NewRequest(&api.ClearExpensesRequest{SessionID: session.ID}))
		require.NoError(t, err)

		stored := getSession(t, ts.Session, session.ID)
		assert.Nil(t, stored.Result)
		assert.Empty(t, stored.Expenses)
		assert.Len(t, stored.Participants, 3)
	})
}

func TestResetCalculation(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	session := createSession(t, ts.Session, "Trip")
	alice := addParticipant(t, ts.Session, session.ID, "Alice")
	addParticipant(t, ts.Session, session.ID, "Bob")
	addExpense(t, ts.Session, &api.AddExpenseRequest{
		SessionID: session.ID, Description: "Tickets", Amount: dec("20"), PaidBy: alice, SplitAll: true,
	})

	_, err := ts.Session.Calculate(ctx, connect.NewRequest(&api.CalculateRequest{SessionID: session.ID}))
	require.NoError(t, err)

	for range 2 {
		_, err = ts.Session.ResetCalculation(ctx, connect.NewRequest(&api.ResetCalculationRequest{SessionID: session.ID}))
		require.NoError(t, err)

		stored := getSession(t, ts.Session, session.ID)
		assert.Nil(t, stored.Result)
		assert.Len(t, stored.Expenses, 1, "reset keeps expenses")
	}

	_, err = ts.Session.ResetCalculation(ctx, connect.NewRequest(&api.ResetCalculationRequest{SessionID: "missing"}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestRemoveParticipant_Cascades(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	session := createSession(t, ts.Session, "Trip")
	alice := addParticipant(t, ts.Session, session.ID, "Alice")
	bob := addParticipant(t, ts.Session, session.ID, "Bob")
	carol := addParticipant(t, ts.Session, session.ID, "Carol")

	// Paid by Carol: dropped.
	addExpense(t, ts.Session, &api.AddExpenseRequest{
		SessionID: session.ID, Description: "Hotel", Amount: dec("300"), PaidBy: carol, SplitAll: true,
	})
	// Carol only in the split: she leaves the split.
	addExpense(t, ts.Session, &api.AddExpenseRequest{
		SessionID: session.ID, Description: "Dinner", Amount: dec("60"), PaidBy: alice, SplitAmong: []string{alice, bob, carol},
	})
	// Only Carol benefits: dropped.
	addExpense(t, ts.Session, &api.AddExpenseRequest{
		SessionID: session.ID, Description: "Souvenir", Amount: dec("15"), PaidBy: bob, SplitAmong: []string{carol},
	})

	resp, err := ts.Session.RemoveParticipant(ctx, connect.NewRequest(&api.RemoveParticipantRequest{
		SessionID:     session.ID,
		ParticipantID: carol,
	}))
	require.NoError(t, err)

	stored := resp.Msg.Session
	require.Len(t, stored.Participants, 2)
	require.Len(t, stored.Expenses, 1)
	assert.Equal(t, "Dinner", stored.Expenses[0].Description)
	assert.Equal(t, []string{alice, bob}, stored.Expenses[0].SplitAmong)

	calc, err := ts.Session.Calculate(ctx, connect.NewRequest(&api.CalculateRequest{SessionID: session.ID}))
	require.NoError(t, err)
	require.Len(t, calc.Msg.Result.Settlements, 1)
	assert.Equal(t, "Bob", calc.Msg.Result.Settlements[0].From)
	assert.Equal(t, "30.00", calc.Msg.Result.Settlements[0].Amount.StringFixed(2))

	_, err = ts.Session.RemoveParticipant(ctx, connect.NewRequest(&api.RemoveParticipantRequest{
		SessionID:     session.ID,
		ParticipantID: carol,
	}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}
