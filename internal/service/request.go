package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/familytable/internal/apperr"
	"github.com/mmynk/familytable/internal/auth"
	"github.com/mmynk/familytable/internal/middleware"
)

// requester returns the authenticated user id of the request.
func requester(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// fail logs err and converts it to a Connect error. Caller mistakes are
// logged at Warn, everything else at Error.
func fail(op string, err error, attrs ...any) error {
	cerr := apperr.ToConnect(err)
	attrs = append(attrs, "error", err)
	if connect.CodeOf(cerr) == connect.CodeInternal {
		slog.Error(op+" failed", attrs...)
	} else {
		slog.Warn(op+" failed", attrs...)
	}
	return cerr
}
