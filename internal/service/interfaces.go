package service

import (
	"context"

	"github.com/processflow/server/models"
)

// AuthService is the authentication core: session flows, password checks,
// and the JWT token lifecycle.
type AuthService interface {
	// RegisterUser creates a new account with the default role. Returns
	// store.ErrCredentialAlreadyTaken (wrapped) when the username or email
	// collides with an existing account.
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Login authenticates the credentials and touches the account's
	// last-login timestamp. Unknown username, wrong password, and inactive
	// account surface as distinct sentinel errors; the HTTP layer collapses
	// them into one response.
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)

	// GetUser returns the account with the given ID.
	GetUser(ctx context.Context, id string) (models.User, error)

	// ChangePassword verifies currentPassword and replaces the stored hash
	// with a fresh hash of newPassword.
	ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error

	// CreateToken issues a signed session token carrying the user's
	// identity claims.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken validates a raw token string and returns its claims.
	// Any validation failure is normalised to ErrTokenIsExpiredOrInvalid.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}
