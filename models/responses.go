package models

// ErrorResponse is the uniform failure body returned by every API endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the acknowledgment body returned by endpoints that have
// no domain payload (register, logout, change-password).
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse is returned by a successful login: the issued session token
// plus the public profile of the authenticated account.
type LoginResponse struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// VerifyResponse is returned by the token verification endpoint.
type VerifyResponse struct {
	Valid bool    `json:"valid"`
	User  Profile `json:"user"`
}

// StatusResponse is the service banner returned by the root endpoint.
type StatusResponse struct {
	Message   string `json:"message"`
	Version   string `json:"version"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
