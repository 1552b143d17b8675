package store

import (
	"context"

	"github.com/processflow/server/models"
)

// UserRepository is the credential store contract. It owns password hashing
// and comparison: raw passwords cross this boundary, hashes never leave it
// except inside the returned [models.User].
//
// Username and email lookups are case-insensitive; callers are expected to
// pass values already normalized via [models.User.Normalize]. ID lookups are
// exact.
type UserRepository interface {
	// CreateUser hashes rawPassword, assigns a new ID, and persists the
	// user. Returns ErrCredentialAlreadyTaken when the username or email is
	// already registered.
	CreateUser(ctx context.Context, user models.User, rawPassword string) (models.User, error)

	// FindUserByUsername returns the user with the given (lowercased)
	// username, or ErrNoUserWasFound.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// FindUserByEmail returns the user with the given (lowercased) email,
	// or ErrNoUserWasFound.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID returns the user with the given ID, or ErrNoUserWasFound.
	FindUserByID(ctx context.Context, id string) (models.User, error)

	// UpdatePassword re-hashes rawPassword with a fresh salt and replaces
	// the stored hash of the user with the given ID.
	UpdatePassword(ctx context.Context, id string, rawPassword string) error

	// TouchLastLogin sets the user's last_login timestamp to now.
	TouchLastLogin(ctx context.Context, id string) error

	// VerifyPassword reports whether rawPassword matches the user's stored
	// hash. The comparison is constant-time by virtue of the hashing
	// primitive.
	VerifyPassword(user models.User, rawPassword string) bool
}
