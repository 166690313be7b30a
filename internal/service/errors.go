package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/auth"
	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/middleware"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

var (
	errUnknownUser     = errors.New("unknown user")
	errSelfPayment     = errors.New("cannot pay yourself")
	errMissingID       = errors.New("id is required")
	errFeatureDisabled = errors.New("only available in development")
	errNotLoggedIn     = errors.New("authentication required")
)

// invalidArgument lists the errors caused by bad input.
var invalidArgument = []error{
	models.ErrEmptyDescription,
	models.ErrDescriptionTooLong,
	models.ErrMissingPayer,
	models.ErrInvalidAmount,
	models.ErrAmountTooLarge,
	models.ErrInvalidCurrency,
	models.ErrNoParticipants,
	models.ErrInvalidShare,
	models.ErrDuplicateParticipant,
	models.ErrShareMismatch,
	models.ErrPersonalPaymentShape,
	calculator.ErrNoSplitParticipants,
	calculator.ErrNegativeTotal,
	calculator.ErrTotalOutOfRange,
	auth.ErrWeakPassword,
	auth.ErrEmptyName,
	errUnknownUser,
	errSelfPayment,
	errMissingID,
}

// toConnectError maps a domain error onto a Connect status code.
func toConnectError(err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrUserExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, errNotLoggedIn):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, errFeatureDisabled):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	}
	for _, target := range invalidArgument {
		if errors.Is(err, target) {
			return connect.NewError(connect.CodeInvalidArgument, err)
		}
	}
	return connect.NewError(connect.CodeInternal, err)
}

// requireSession returns the caller's session or an Unauthenticated error.
func requireSession(ctx context.Context) (middleware.Session, error) {
	s, ok := middleware.CurrentUser(ctx)
	if !ok {
		return middleware.Session{}, connect.NewError(connect.CodeUnauthenticated, errNotLoggedIn)
	}
	return s, nil
}
