package models

// Role is the closed set of authorization levels assignable to a user.
type Role string

const (
	// RoleAdmin grants full administrative capabilities.
	RoleAdmin Role = "admin"

	// RoleUser is the default non-privileged role assigned at registration.
	RoleUser Role = "user"
)

// Valid reports whether the role belongs to the closed set of known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Allowed is the capability check used by route handlers that need
// role-based authorization. It reports whether the role satisfies any of the
// required roles. Admin satisfies every requirement.
func (r Role) Allowed(required ...Role) bool {
	if r == RoleAdmin {
		return true
	}
	for _, req := range required {
		if r == req {
			return true
		}
	}
	return false
}
