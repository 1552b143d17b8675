package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrCredentialAlreadyTaken is returned when an attempt to create a user
	// fails because the username or email is already registered.
	ErrCredentialAlreadyTaken = errors.New("username or email already taken")

	// ErrNoUserWasFound is returned when a lookup expected to match a user
	// record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrNothingUpdated is returned when an UPDATE targets a user ID that
	// does not exist, so no rows were affected.
	ErrNothingUpdated = errors.New("no rows were updated")
)
