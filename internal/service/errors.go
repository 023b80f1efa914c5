package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

var (
	ErrNoParticipants = errors.New("add at least one participant before calculating")
	ErrNoExpenses     = errors.New("add at least one expense before calculating")
)

// toConnectError maps domain and storage errors to Connect status codes.
func toConnectError(err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrUnknownParticipant):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, ErrNoParticipants), errors.Is(err, ErrNoExpenses):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrConflict):
		return connect.NewError(connect.CodeAborted, err)
	case errors.Is(err, storage.ErrLimitReached):
		return connect.NewError(connect.CodeResourceExhausted, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
