package auth

import (
	"context"

	"github.com/mmynk/familytable/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// The service layer only sees this interface, so the credential method can
// change without touching it.
type Authenticator interface {
	// Register creates a new account. nickname may be nil.
	Register(ctx context.Context, email, name string, nickname *string, credential string) (*models.User, error)

	// Authenticate verifies the credentials and returns the user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
