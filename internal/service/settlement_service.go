// Package service implements the Connect handlers for settleup.
package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

var _ apiconnect.SettlementServiceHandler = (*SettlementService)(nil)

// SettlementService computes settlements from self-contained requests.
// It keeps no state between calls.
type SettlementService struct {
	metrics *metrics.Manager
}

// NewSettlementService creates a new SettlementService. m may be nil.
func NewSettlementService(m *metrics.Manager) *SettlementService {
	return &SettlementService{metrics: m}
}

// Settle computes balances and the transfers that settle them.
func (s *SettlementService) Settle(ctx context.Context, req *connect.Request[api.SettleRequest]) (*connect.Response[api.SettleResponse], error) {
	slog.Info("Settle request received",
		"participants_count", len(req.Msg.Participants),
		"expenses_count", len(req.Msg.Expenses),
	)

	if err := validateRequest(req.Msg); err != nil {
		slog.Warn("Settle rejected", "error", err)
		return nil, toConnectError(err)
	}

	participants := participantsFromAPI(req.Msg.Participants)
	expenses := expensesFromAPI(req.Msg.Expenses)

	result, err := settle(s.metrics, participants, expenses)
	if err != nil {
		slog.Warn("Settle failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Settle successful",
		"participants_count", len(participants),
		"settlements_count", len(result.Settlements),
	)

	return connect.NewResponse(&api.SettleResponse{
		Result: *toAPIResult(result, participants, totalOf(expenses)),
	}), nil
}
