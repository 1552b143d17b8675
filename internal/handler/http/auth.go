package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/processflow/server/internal/logger"
	"github.com/processflow/server/internal/service"
	"github.com/processflow/server/internal/store"
	"github.com/processflow/server/internal/utils"
	"github.com/processflow/server/models"
)

const (
	// invalidCredentialsMessage is shared by every login failure (unknown
	// username, wrong password, inactive account) so responses cannot be
	// used to enumerate valid usernames.
	invalidCredentialsMessage = "invalid credentials"

	internalErrorMessage = "internal server error"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			utils.WriteError(w, "username and password are required", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrNoUserWasFound),
			errors.Is(err, service.ErrWrongPassword),
			errors.Is(err, service.ErrUserInactive):
			log.Err(err).Msg("login rejected")
			utils.WriteError(w, invalidCredentialsMessage, http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			utils.WriteError(w, internalErrorMessage, http.StatusInternalServerError)
			return
		}
	}

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		utils.WriteError(w, internalErrorMessage, http.StatusInternalServerError)
		return
	}

	log.Debug().Str("id", foundUser.ID).Str("username", foundUser.Username).Msg("user successfully logged in")

	utils.WriteJSON(w, models.LoginResponse{
		Token: token.SignedString,
		User:  foundUser.Profile(),
	}, http.StatusOK)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			utils.WriteError(w, "username, password and email are required", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrCredentialAlreadyTaken):
			log.Err(err).Msg("username or email already registered")
			utils.WriteError(w, "username or email already registered", http.StatusConflict)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			utils.WriteError(w, internalErrorMessage, http.StatusInternalServerError)
			return
		}
	}

	log.Debug().Str("id", registeredUser.ID).Str("username", registeredUser.Username).Msg("user registered")

	utils.WriteJSON(w, models.MessageResponse{Message: "user created successfully"}, http.StatusCreated)
}

// verify reflects the identity the auth middleware already resolved; it
// performs no additional store access.
func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		log.Error().Msg("no authenticated user in context")
		utils.WriteError(w, unauthorizedMessage, http.StatusUnauthorized)
		return
	}

	utils.WriteJSON(w, models.VerifyResponse{
		Valid: true,
		User:  user.Profile(),
	}, http.StatusOK)
}

// logout acknowledges the request without invalidating the token server-side.
// Tokens are stateless and remain valid until their natural expiry; clients
// discard them locally.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.MessageResponse{Message: "logout successful"}, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		log.Error().Msg("no authenticated user in context")
		utils.WriteError(w, unauthorizedMessage, http.StatusUnauthorized)
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.ChangePassword(ctx, user.ID, req); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			utils.WriteError(w, "current and new passwords are required", http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrPasswordTooShort):
			log.Err(err).Msg("new password too short")
			utils.WriteError(w, "new password must be at least 6 characters", http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrWrongPassword):
			log.Err(err).Msg("wrong current password")
			utils.WriteError(w, "current password is incorrect", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrNoUserWasFound):
			log.Err(err).Msg("account no longer exists")
			utils.WriteError(w, unauthorizedMessage, http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during password change")
			utils.WriteError(w, internalErrorMessage, http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "password changed successfully"}, http.StatusOK)
}
