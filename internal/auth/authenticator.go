package auth

import (
	"context"

	"github.com/mmynk/settleup/internal/models"
)

// Authenticator verifies and manages user credentials.
// The service layer only talks to this interface, so the credential scheme
// can change without touching the RPC handlers.
type Authenticator interface {
	// Register creates a new user account with the given name and credential.
	Register(ctx context.Context, name, credential string) (*models.User, error)

	// Authenticate verifies the credential and returns the user on success.
	Authenticate(ctx context.Context, name, credential string) (*models.User, error)

	// ChangeCredential replaces the user's credential after checking the old one.
	ChangeCredential(ctx context.Context, userID int64, oldCredential, newCredential string) error

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
