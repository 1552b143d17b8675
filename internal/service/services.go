// Package service implements the business logic of the ProcessFlow auth
// backend: session flows, token lifecycle, and the admin bootstrap routine.
package service

import (
	"github.com/processflow/server/internal/config"
	"github.com/processflow/server/internal/logger"
	"github.com/processflow/server/internal/store"
)

type Services struct {
	AuthService AuthService
	Bootstrap   *Bootstrap
}

func NewServices(userRepository store.UserRepository, db *store.DB, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(userRepository, cfg.App, logger),
		Bootstrap:   NewBootstrap(userRepository, db, logger),
	}
}
