// Package apperr defines the error kinds surfaced to callers of the family,
// recipe and notification operations, and their mapping to Connect codes.
package apperr

import (
	"errors"
	"fmt"

	"connectrpc.com/connect"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrAlreadyGrouped  = errors.New("user already belongs to a family")
	ErrKeeperBlocked   = errors.New("keeper cannot leave the family while other members exist; transfer the keeper role or remove the other members first")
	ErrSelfRemoval     = errors.New("keeper cannot remove themselves; delete the family instead")
	ErrSelfTransfer    = errors.New("cannot transfer keeper role to yourself")
	ErrConflict        = errors.New("concurrent modification, try again")
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotMember is a Forbidden variant for requests against a family the
	// caller does not belong to.
	ErrNotMember = fmt.Errorf("%w: not a member of this family", ErrForbidden)
)

// Code returns the Connect code for err.
func Code(err error) connect.Code {
	switch {
	case errors.Is(err, ErrNotFound):
		return connect.CodeNotFound
	case errors.Is(err, ErrForbidden):
		return connect.CodePermissionDenied
	case errors.Is(err, ErrAlreadyGrouped), errors.Is(err, ErrKeeperBlocked):
		return connect.CodeFailedPrecondition
	case errors.Is(err, ErrSelfRemoval), errors.Is(err, ErrSelfTransfer), errors.Is(err, ErrInvalidArgument):
		return connect.CodeInvalidArgument
	case errors.Is(err, ErrConflict):
		return connect.CodeAborted
	default:
		return connect.CodeInternal
	}
}

// ToConnect wraps err in a *connect.Error carrying the mapped code.
func ToConnect(err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return err
	}
	return connect.NewError(Code(err), err)
}

// Invalid builds an ErrInvalidArgument with a message.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
