package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/processflow/server/internal/logger"
	"github.com/processflow/server/internal/store"
	"github.com/processflow/server/internal/utils"
	"github.com/processflow/server/models"
)

// unauthorizedMessage is the single body returned for every guard rejection,
// so callers cannot tell a missing header from a tampered or expired token.
const unauthorizedMessage = "invalid or expired token"

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// validates it via [service.AuthService.ParseToken], confirms that the
// account referenced by the claims still exists, and on success stores the
// resolved user in the request context before delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized in the following
// cases:
//   - The "Authorization" header is absent or cannot be parsed as a bearer
//     token.
//   - The token is expired, tampered with, or otherwise invalid.
//   - The account referenced by the token no longer exists.
//
// All rejections share one response body; the specific cause is recorded only
// in the server-side logs. No role check happens here; role-based
// authorization is the responsibility of individual routes via [RequireRole].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Error().Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteError(w, unauthorizedMessage, http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Error().Err(err).Send()
			utils.WriteError(w, unauthorizedMessage, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Error().Err(err).Msg("error occurred during parsing token")
			utils.WriteError(w, unauthorizedMessage, http.StatusUnauthorized)
			return
		}

		// The token alone is not enough: confirm the account still exists
		// before trusting the claims.
		user, err := h.services.AuthService.GetUser(ctx, token.Claims.UserID())
		if err != nil {
			if errors.Is(err, store.ErrNoUserWasFound) {
				log.Error().Err(err).Str("id", token.Claims.UserID()).Msg("token references a missing account")
				utils.WriteError(w, unauthorizedMessage, http.StatusUnauthorized)
				return
			}
			log.Err(err).Msg("account lookup failed during authentication")
			utils.WriteError(w, internalErrorMessage, http.StatusInternalServerError)
			return
		}

		// Store the resolved user in the context so that downstream handlers
		// can use the identity without re-parsing the token.
		ctx = utils.WithUser(ctx, &user)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole returns a middleware enforcing that the authenticated user's
// role satisfies one of the required roles. It must run after the auth
// middleware. This is the capability check route groups use instead of ad
// hoc role comparisons inside handlers.
func RequireRole(required ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := utils.GetUserFromContext(r.Context())
			if !ok {
				utils.WriteError(w, unauthorizedMessage, http.StatusUnauthorized)
				return
			}

			if !user.Role.Allowed(required...) {
				utils.WriteError(w, "insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value.
//
// The header is expected to follow the standard format:
//
//	Authorization: <scheme> <token>
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] — if the header contains fewer than
//     two space-separated parts (i.e. the token is missing entirely).
//   - [ErrEmptyToken] — if the second part exists but is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
