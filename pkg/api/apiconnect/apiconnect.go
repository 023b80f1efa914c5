// Package apiconnect wires the settleup services to connect handlers and clients.
//
// Every handler and client is configured with api.JSONCodec, so the services
// speak the Connect protocol with application/json bodies.
package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/api"
)

const (
	// SettlementServiceName is the fully-qualified name of the SettlementService.
	SettlementServiceName = "settleup.v1.SettlementService"
	// SessionServiceName is the fully-qualified name of the SessionService.
	SessionServiceName = "settleup.v1.SessionService"
)

// Procedure paths, as they appear in URLs.
const (
	SettlementServiceSettleProcedure         = "/settleup.v1.SettlementService/Settle"
	SessionServiceCreateSessionProcedure     = "/settleup.v1.SessionService/CreateSession"
	SessionServiceGetSessionProcedure        = "/settleup.v1.SessionService/GetSession"
	SessionServiceListSessionsProcedure      = "/settleup.v1.SessionService/ListSessions"
	SessionServiceDeleteSessionProcedure     = "/settleup.v1.SessionService/DeleteSession"
	SessionServiceAddParticipantProcedure    = "/settleup.v1.SessionService/AddParticipant"
	SessionServiceRemoveParticipantProcedure = "/settleup.v1.SessionService/RemoveParticipant"
	SessionServiceAddExpenseProcedure        = "/settleup.v1.SessionService/AddExpense"
	SessionServiceRemoveExpenseProcedure     = "/settleup.v1.SessionService/RemoveExpense"
	SessionServiceClearExpensesProcedure     = "/settleup.v1.SessionService/ClearExpenses"
	SessionServiceCalculateProcedure         = "/settleup.v1.SessionService/Calculate"
	SessionServiceResetCalculationProcedure  = "/settleup.v1.SessionService/ResetCalculation"
)

func withCodec[T any](opts []T, codec T) []T {
	return append([]T{codec}, opts...)
}

// SettlementServiceHandler computes settlements from a self-contained request.
type SettlementServiceHandler interface {
	Settle(context.Context, *connect.Request[api.SettleRequest]) (*connect.Response[api.SettleResponse], error)
}

// NewSettleHandler builds the handler for the Settle procedure alone, so it can
// be mounted at additional routes.
func NewSettleHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) *connect.Handler {
	return connect.NewUnaryHandler(
		SettlementServiceSettleProcedure,
		svc.Settle,
		withCodec(opts, connect.HandlerOption(connect.WithCodec(api.JSONCodec{})))...,
	)
}

// NewSettlementServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	settleHandler := NewSettleHandler(svc, opts...)
	return "/" + SettlementServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case SettlementServiceSettleProcedure:
			settleHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// SettlementServiceClient is a client for the SettlementService.
type SettlementServiceClient interface {
	Settle(context.Context, *connect.Request[api.SettleRequest]) (*connect.Response[api.SettleResponse], error)
}

// NewSettlementServiceClient constructs a client for the SettlementService.
// baseURL is the scheme, host and optional path prefix, e.g. http://localhost:8080.
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SettlementServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withCodec(opts, connect.ClientOption(connect.WithCodec(api.JSONCodec{})))
	return &settlementServiceClient{
		settle: connect.NewClient[api.SettleRequest, api.SettleResponse](httpClient, baseURL+SettlementServiceSettleProcedure, opts...),
	}
}

type settlementServiceClient struct {
	settle *connect.Client[api.SettleRequest, api.SettleResponse]
}

func (c *settlementServiceClient) Settle(ctx context.Context, req *connect.Request[api.SettleRequest]) (*connect.Response[api.SettleResponse], error) {
	return c.settle.CallUnary(ctx, req)
}

// SessionServiceHandler manages sessions and runs calculations on them.
type SessionServiceHandler interface {
	CreateSession(context.Context, *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error)
	GetSession(context.Context, *connect.Request[api.GetSessionRequest]) (*connect.Response[api.GetSessionResponse], error)
	ListSessions(context.Context, *connect.Request[api.ListSessionsRequest]) (*connect.Response[api.ListSessionsResponse], error)
	DeleteSession(context.Context, *connect.Request[api.DeleteSessionRequest]) (*connect.Response[api.DeleteSessionResponse], error)
	AddParticipant(context.Context, *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error)
	RemoveParticipant(context.Context, *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.RemoveParticipantResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	RemoveExpense(context.Context, *connect.Request[api.RemoveExpenseRequest]) (*connect.Response[api.RemoveExpenseResponse], error)
	ClearExpenses(context.Context, *connect.Request[api.ClearExpensesRequest]) (*connect.Response[api.ClearExpensesResponse], error)
	Calculate(context.Context, *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error)
	ResetCalculation(context.Context, *connect.Request[api.ResetCalculationRequest]) (*connect.Response[api.ResetCalculationResponse], error)
}

// NewSessionServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewSessionServiceHandler(svc SessionServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts, connect.HandlerOption(connect.WithCodec(api.JSONCodec{})))
	handlers := map[string]http.Handler{
		SessionServiceCreateSessionProcedure:     connect.NewUnaryHandler(SessionServiceCreateSessionProcedure, svc.CreateSession, opts...),
		SessionServiceGetSessionProcedure:        connect.NewUnaryHandler(SessionServiceGetSessionProcedure, svc.GetSession, opts...),
		SessionServiceListSessionsProcedure:      connect.NewUnaryHandler(SessionServiceListSessionsProcedure, svc.ListSessions, opts...),
		SessionServiceDeleteSessionProcedure:     connect.NewUnaryHandler(SessionServiceDeleteSessionProcedure, svc.DeleteSession, opts...),
		SessionServiceAddParticipantProcedure:    connect.NewUnaryHandler(SessionServiceAddParticipantProcedure, svc.AddParticipant, opts...),
		SessionServiceRemoveParticipantProcedure: connect.NewUnaryHandler(SessionServiceRemoveParticipantProcedure, svc.RemoveParticipant, opts...),
		SessionServiceAddExpenseProcedure:        connect.NewUnaryHandler(SessionServiceAddExpenseProcedure, svc.AddExpense, opts...),
		SessionServiceRemoveExpenseProcedure:     connect.NewUnaryHandler(SessionServiceRemoveExpenseProcedure, svc.RemoveExpense, opts...),
		SessionServiceClearExpensesProcedure:     connect.NewUnaryHandler(SessionServiceClearExpensesProcedure, svc.ClearExpenses, opts...),
		SessionServiceCalculateProcedure:         connect.NewUnaryHandler(SessionServiceCalculateProcedure, svc.Calculate, opts...),
		SessionServiceResetCalculationProcedure:  connect.NewUnaryHandler(SessionServiceResetCalculationProcedure, svc.ResetCalculation, opts...),
	}
	return "/" + SessionServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// SessionServiceClient is a client for the SessionService.
type SessionServiceClient interface {
	SessionServiceHandler
}

// NewSessionServiceClient constructs a client for the SessionService.
func NewSessionServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SessionServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withCodec(opts, connect.ClientOption(connect.WithCodec(api.JSONCodec{})))
	return &sessionServiceClient{
		createSession:     connect.NewClient[api.CreateSessionRequest, api.CreateSessionResponse](httpClient, baseURL+SessionServiceCreateSessionProcedure, opts...),
		getSession:        connect.NewClient[api.GetSessionRequest, api.GetSessionResponse](httpClient, baseURL+SessionServiceGetSessionProcedure, opts...),
		listSessions:      connect.NewClient[api.ListSessionsRequest, api.ListSessionsResponse](httpClient, baseURL+SessionServiceListSessionsProcedure, opts...),
		deleteSession:     connect.NewClient[api.DeleteSessionRequest, api.DeleteSessionResponse](httpClient, baseURL+SessionServiceDeleteSessionProcedure, opts...),
		addParticipant:    connect.NewClient[api.AddParticipantRequest, api.AddParticipantResponse](httpClient, baseURL+SessionServiceAddParticipantProcedure, opts...),
		removeParticipant: connect.NewClient[api.RemoveParticipantRequest, api.RemoveParticipantResponse](httpClient, baseURL+SessionServiceRemoveParticipantProcedure, opts...),
		addExpense:        connect.NewClient[api.AddExpenseRequest, api.AddExpenseResponse](httpClient, baseURL+SessionServiceAddExpenseProcedure, opts...),
		removeExpense:     connect.NewClient[api.RemoveExpenseRequest, api.RemoveExpenseResponse](httpClient, baseURL+SessionServiceRemoveExpenseProcedure, opts...),
		clearExpenses:     connect.NewClient[api.ClearExpensesRequest, api.ClearExpensesResponse](httpClient, baseURL+SessionServiceClearExpensesProcedure, opts...),
		calculate:         connect.NewClient[api.CalculateRequest, api.CalculateResponse](httpClient, baseURL+SessionServiceCalculateProcedure, opts...),
		resetCalculation:  connect.NewClient[api.ResetCalculationRequest, api.ResetCalculationResponse](httpClient, baseURL+SessionServiceResetCalculationProcedure, opts...),
	}
}

type sessionServiceClient struct {
	createSession     *connect.Client[api.CreateSessionRequest, api.CreateSessionResponse]
	getSession        *connect.Client[api.GetSessionRequest, api.GetSessionResponse]
	listSessions      *connect.Client[api.ListSessionsRequest, api.ListSessionsResponse]
	deleteSession     *connect.Client[api.DeleteSessionRequest, api.DeleteSessionResponse]
	addParticipant    *connect.Client[api.AddParticipantRequest, api.AddParticipantResponse]
	removeParticipant *connect.Client[api.RemoveParticipantRequest, api.RemoveParticipantResponse]
	addExpense        *connect.Client[api.AddExpenseRequest, api.AddExpenseResponse]
	removeExpense     *connect.Client[api.RemoveExpenseRequest, api.RemoveExpenseResponse]
	clearExpenses     *connect.Client[api.ClearExpensesRequest, api.ClearExpensesResponse]
	calculate         *connect.Client[api.CalculateRequest, api.CalculateResponse]
	resetCalculation  *connect.Client[api.ResetCalculationRequest, api.ResetCalculationResponse]
}

func (c *sessionServiceClient) CreateSession(ctx context.Context, req *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error) {
	return c.createSession.CallUnary(ctx, req)
}

func (c *sessionServiceClient) GetSession(ctx context.Context, req *connect.Request[api.GetSessionRequest]) (*connect.Response[api.GetSessionResponse], error) {
	return c.getSession.CallUnary(ctx, req)
}

func (c *sessionServiceClient) ListSessions(ctx context.Context, req *connect.Request[api.ListSessionsRequest]) (*connect.Response[api.ListSessionsResponse], error) {
	return c.listSessions.CallUnary(ctx, req)
}

func (c *sessionServiceClient) DeleteSession(ctx context.Context, req *connect.Request[api.DeleteSessionRequest]) (*connect.Response[api.DeleteSessionResponse], error) {
	return c.deleteSession.CallUnary(ctx, req)
}

func (c *sessionServiceClient) AddParticipant(ctx context.Context, req *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error) {
	return c.addParticipant.CallUnary(ctx, req)
}

func (c *sessionServiceClient) RemoveParticipant(ctx context.Context, req *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.RemoveParticipantResponse], error) {
	return c.removeParticipant.CallUnary(ctx, req)
}

func (c *sessionServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *sessionServiceClient) RemoveExpense(ctx context.Context, req *connect.Request[api.RemoveExpenseRequest]) (*connect.Response[api.RemoveExpenseResponse], error) {
	return c.removeExpense.CallUnary(ctx, req)
}

func (c *sessionServiceClient) ClearExpenses(ctx context.Context, req *connect.Request[api.ClearExpensesRequest]) (*connect.Response[api.ClearExpensesResponse], error) {
	return c.clearExpenses.CallUnary(ctx, req)
}

func (c *sessionServiceClient) Calculate(ctx context.Context, req *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error) {
	return c.calculate.CallUnary(ctx, req)
}

func (c *sessionServiceClient) ResetCalculation(ctx context.Context, req *connect.Request[api.ResetCalculationRequest]) (*connect.Response[api.ResetCalculationResponse], error) {
	return c.resetCalculation.CallUnary(ctx, req)
}

// UnimplementedSessionServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedSessionServiceHandler struct{}

var _ SessionServiceHandler = UnimplementedSessionServiceHandler{}

func (UnimplementedSessionServiceHandler) CreateSession(context.Context, *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.SessionService.CreateSession is not implemented"))
}

func (UnimplementedSessionServiceHandler) GetSession(context.Context, *connect.Request[api.GetSessionRequest]) (*connect.Response[api.GetSessionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.SessionService.GetSession is not implemented"))
}

func (UnimplementedSessionServiceHandler) ListSessions(context.Context, *connect.Request[api.ListSessionsRequest]) (*connect.Response[api.ListSessionsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.SessionService.ListSessions is not implemented"))
}

func (UnimplementedSessionServiceHandler) DeleteSession(context.Context, *connect.Request[api.DeleteSessionRequest]) (*connect.Response[api.DeleteSessionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.SessionService.DeleteSession is not implemented"))
}

func (UnimplementedSessionServiceHandler) AddParticipant(context.Context, *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.SessionService.AddParticipant is not implemented"))
}

func (UnimplementedSessionServiceHandler) RemoveParticipant(context.Context, *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.RemoveParticipantResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.SessionService.RemoveParticipant is not implemented"))
}

func (UnimplementedSessionServiceHandler) AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.SessionService.AddExpense is not implemented"))
}

func (UnimplementedSessionServiceHandler) RemoveExpense(context.Context, *connect.Request[api.RemoveExpenseRequest]) (*connect.Response[api.RemoveExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.SessionService.RemoveExpense is not implemented"))
}

func (UnimplementedSessionServiceHandler) ClearExpenses(context.Context, *connect.Request[api.ClearExpensesRequest]) (*connect.Response[api.ClearExpensesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.SessionService.ClearExpenses is not implemented"))
}

func (UnimplementedSessionServiceHandler) Calculate(context.Context, *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.SessionService.Calculate is not implemented"))
}

func (UnimplementedSessionServiceHandler) ResetCalculation(context.Context, *connect.Request[api.ResetCalculationRequest]) (*connect.Response[api.ResetCalculationResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.SessionService.ResetCalculation is not implemented"))
}
