package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity data embedded in every session token.
//
// The user's ID travels in the standard "sub" claim; username and role are
// carried as private claims so that downstream services can make coarse
// authorization decisions without a store round-trip. The account is still
// re-checked against the credential store by the auth middleware.
type Claims struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
	jwt.RegisteredClaims
}

// UserID returns the account identifier carried in the "sub" claim.
func (c *Claims) UserID() string {
	return c.Subject
}

// Token wraps an issued or parsed JWT for authentication flows.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers or
// stored on the client side.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Excluded from JSON serialization because only the compact string form
	// is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// Claims is the decoded claim set of the token.
	Claims *Claims `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
