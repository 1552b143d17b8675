package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/processflow/server/internal/logger"
	"github.com/processflow/server/internal/store"
	"github.com/processflow/server/models"
)

// Fixed profile of the bootstrap administrator account. The initial password
// is meant to be changed through the change-password flow after first login.
const (
	adminUsername        = "admin"
	adminInitialPassword = "Lima12345"
	adminName            = "Administrator"
	adminEmail           = "admin@processflow.com"
)

// Bootstrap ensures the privileged admin account exists. It runs once at
// process startup, after the store connection is established and before the
// server accepts traffic. A failure here is logged by the caller and must
// not abort startup.
type Bootstrap struct {
	userRepository store.UserRepository
	classifier     store.ErrorClassifier
	logger         *logger.Logger
}

// NewBootstrap constructs the admin-account bootstrap routine.
func NewBootstrap(userRepository store.UserRepository, classifier store.ErrorClassifier, logger *logger.Logger) *Bootstrap {
	return &Bootstrap{
		userRepository: userRepository,
		classifier:     classifier,
		logger:         logger,
	}
}

// EnsureAdmin creates the admin account if it does not exist yet.
//
// The routine is idempotent: a pre-existing admin account is left untouched,
// so running it on every startup is safe. When the creation attempt fails
// with an error the classifier deems transient, one retry is made.
func (b *Bootstrap) EnsureAdmin(ctx context.Context) error {
	_, err := b.userRepository.FindUserByUsername(ctx, adminUsername)
	if err == nil {
		b.logger.Info().Msg("admin user already exists")
		return nil
	}
	if !errors.Is(err, store.ErrNoUserWasFound) {
		return fmt.Errorf("admin lookup failed: %w", err)
	}

	if err := b.createAdmin(ctx); err != nil {
		if b.classifier != nil && b.classifier.Classify(err) == store.Retryable {
			b.logger.Warn().Err(err).Msg("admin creation failed with transient error, retrying")
			err = b.createAdmin(ctx)
		}
		if err != nil {
			return fmt.Errorf("admin creation failed: %w", err)
		}
	}

	b.logger.Info().Msg("admin user created successfully")
	return nil
}

func (b *Bootstrap) createAdmin(ctx context.Context) error {
	admin := models.User{
		Username: adminUsername,
		Email:    adminEmail,
		Role:     models.RoleAdmin,
		Name:     adminName,
	}

	_, err := b.userRepository.CreateUser(ctx, admin, adminInitialPassword)
	if errors.Is(err, store.ErrCredentialAlreadyTaken) {
		// Lost a race with a concurrent startup; the account exists, which
		// is all this routine guarantees.
		return nil
	}

	return err
}
