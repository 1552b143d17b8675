// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, logging, tracing, CORS, and rate-limit
// concerns are all handled at this layer before requests are forwarded to
// the service layer.
package http

import (
	"github.com/processflow/server/internal/config"
	"github.com/processflow/server/internal/logger"
	"github.com/processflow/server/internal/service"
)

type Handler struct {
	services *service.Services
	cfg      config.Server
	version  string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		cfg:      cfg.Server,
		version:  cfg.App.Version,
		logger:   logger,
	}
}
