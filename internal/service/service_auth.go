package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/processflow/server/internal/config"
	"github.com/processflow/server/internal/logger"
	"github.com/processflow/server/internal/store"
	"github.com/processflow/server/internal/utils"
	"github.com/processflow/server/models"
)

// minPasswordLength is the minimum length accepted for a new password in the
// change-password flow. Registration does not enforce it.
const minPasswordLength = 6

// authService is the concrete implementation of AuthService.
// It composes the credential store (which owns bcrypt hashing) with the JWT
// token lifecycle.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// RegisterUser creates a new user account with the default role.
//
// It validates that username, password, and email are all non-empty,
// normalizes the credential fields to lowercase, and rejects the request
// when either the username or the email is already registered. The display
// name defaults to the username when none is supplied.
//
// Returns the persisted user (with a server-assigned ID) or:
//   - ErrInvalidDataProvided if any required field is empty.
//   - A wrapped store.ErrCredentialAlreadyTaken on a username/email collision.
func (a *authService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if req.Username == "" || req.Password == "" || req.Email == "" {
		log.Error().Str("username", req.Username).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     models.RoleUser,
		Name:     req.Username,
	}
	user.Normalize()

	// Combined uniqueness pre-check; the DB unique constraints remain the
	// backstop against concurrent registrations.
	if taken, err := a.credentialTaken(ctx, user); err != nil {
		log.Err(err).Str("username", user.Username).Msg("uniqueness check failed")
		return models.User{}, fmt.Errorf("uniqueness check failed: %w", err)
	} else if taken {
		return models.User{}, fmt.Errorf("user creation ended with error: %w", store.ErrCredentialAlreadyTaken)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user, req.Password)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// credentialTaken reports whether the username or the email already belongs
// to an existing account.
func (a *authService) credentialTaken(ctx context.Context, user models.User) (bool, error) {
	if _, err := a.userRepository.FindUserByUsername(ctx, user.Username); err == nil {
		return true, nil
	} else if !errors.Is(err, store.ErrNoUserWasFound) {
		return false, err
	}

	if _, err := a.userRepository.FindUserByEmail(ctx, user.Email); err == nil {
		return true, nil
	} else if !errors.Is(err, store.ErrNoUserWasFound) {
		return false, err
	}

	return false, nil
}

// Login authenticates an existing user.
//
// It validates that both fields are non-empty, looks up the account by the
// lowercased username, and compares the password against the stored bcrypt
// hash. The account-active check runs only after a successful password
// match. On success the account's last-login timestamp is updated.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if username or password is empty.
//   - A wrapped store.ErrNoUserWasFound if the account does not exist.
//   - ErrWrongPassword if the password does not match.
//   - ErrUserInactive if the account is deactivated.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if req.Username == "" || req.Password == "" {
		log.Error().Str("username", req.Username).Msg("invalid login data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	lookup := models.User{Username: req.Username}
	lookup.Normalize()

	foundUser, err := a.userRepository.FindUserByUsername(ctx, lookup.Username)
	if err != nil {
		log.Err(err).Str("username", lookup.Username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if !a.userRepository.VerifyPassword(foundUser, req.Password) {
		log.Error().
			Str("id", foundUser.ID).
			Str("username", foundUser.Username).
			Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	if !foundUser.IsActive {
		log.Error().
			Str("id", foundUser.ID).
			Str("username", foundUser.Username).
			Msg("inactive user attempted login")
		return models.User{}, ErrUserInactive
	}

	if err := a.userRepository.TouchLastLogin(ctx, foundUser.ID); err != nil {
		log.Err(err).Str("id", foundUser.ID).Msg("updating last login failed")
		return models.User{}, fmt.Errorf("updating last login failed: %w", err)
	}

	return foundUser, nil
}

// GetUser returns the account with the given ID. Used by the auth middleware
// to confirm that the account referenced by a token still exists.
func (a *authService) GetUser(ctx context.Context, id string) (models.User, error) {
	if id == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByID(ctx, id)
	if err != nil {
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return foundUser, nil
}

// ChangePassword verifies the current password of the user with the given ID
// and replaces the stored hash with a fresh hash of the new password.
//
// Returns:
//   - ErrInvalidDataProvided if either password field is empty.
//   - ErrPasswordTooShort if the new password has fewer than 6 characters.
//   - A wrapped store.ErrNoUserWasFound if the account no longer exists.
//   - ErrWrongPassword if the current password does not match.
func (a *authService) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error {
	log := logger.FromContext(ctx)

	if req.CurrentPassword == "" || req.NewPassword == "" {
		log.Error().Str("id", userID).Msg("invalid change-password data provided")
		return ErrInvalidDataProvided
	}

	if len(req.NewPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	foundUser, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Str("id", userID).Msg("user search by id failed")
		return fmt.Errorf("user search by id failed: %w", err)
	}

	if !a.userRepository.VerifyPassword(foundUser, req.CurrentPassword) {
		log.Error().Str("id", userID).Msg("wrong current password")
		return ErrWrongPassword
	}

	if err := a.userRepository.UpdatePassword(ctx, userID, req.NewPassword); err != nil {
		log.Err(err).Str("id", userID).Msg("password update failed")
		return fmt.Errorf("password update failed: %w", err)
	}

	return nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the
// configured tokenIssuer as the "iss" claim plus the user's id, username,
// and role, and expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation
// fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature and
// the issuer claim. Any validation failure (expired, wrong issuer, malformed)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers never leak the
// failure cause.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
