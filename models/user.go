package models

import (
	"strings"
	"time"
)

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the unique identifier of the user, assigned by the store at
	// creation time. It is a UUID string and is immutable afterwards.
	ID string `json:"id"`

	// Username is the unique login identifier. It is normalized to lowercase
	// before storage and lookup, so uniqueness is case-insensitive.
	Username string `json:"username"`

	// Email is the unique contact address, normalized to lowercase like
	// Username.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This value MUST be a hash, never plaintext, and is never serialized.
	PasswordHash string `json:"-"`

	// Role determines the user's capabilities. See [Role].
	Role Role `json:"role"`

	// Name is the display name of the user. Optional; defaults to the
	// username at registration.
	Name string `json:"name"`

	// Department is an optional organizational attribute.
	Department string `json:"department"`

	// IsActive marks whether the account may log in. Inactive accounts are
	// rejected at login even with correct credentials.
	IsActive bool `json:"-"`

	// LastLogin is the timestamp of the most recent successful login.
	// Nil until the first login.
	LastLogin *time.Time `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Normalize lowercases the case-insensitive credential fields in place.
// It must be applied before any storage or lookup operation.
func (u *User) Normalize() {
	u.Username = strings.ToLower(strings.TrimSpace(u.Username))
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
}

// Profile is the public projection of a User returned by the API.
// It deliberately omits the password hash and account-state fields.
type Profile struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Department string `json:"department"`
}

// Profile returns the public projection of the user.
func (u User) Profile() Profile {
	return Profile{
		ID:         u.ID,
		Username:   u.Username,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Department: u.Department,
	}
}
