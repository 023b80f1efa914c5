package service

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/middleware"
	"github.com/mmynk/settleup/internal/storage/memory"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

type testServer struct {
	URL        string
	Settlement apiconnect.SettlementServiceClient
	Session    apiconnect.SessionServiceClient
	Metrics    *metrics.Manager
}

// setupTestServer serves both services over httptest with the production interceptors.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	store := memory.New()
	m := metrics.NewManager()
	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(m),
	)

	settlementSvc := NewSettlementService(m)
	settlementPath, settlementHandler := apiconnect.NewSettlementServiceHandler(settlementSvc, interceptors)
	sessionPath, sessionHandler := apiconnect.NewSessionServiceHandler(NewSessionService(store, m), interceptors)

	mux := http.NewServeMux()
	mux.Handle(settlementPath, settlementHandler)
	mux.Handle(sessionPath, sessionHandler)
	mux.Handle("POST /settlements", apiconnect.NewSettleHandler(settlementSvc, interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testServer{
		URL:        server.URL,
		Settlement: apiconnect.NewSettlementServiceClient(http.DefaultClient, server.URL),
		Session:    apiconnect.NewSessionServiceClient(http.DefaultClient, server.URL),
		Metrics:    m,
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
