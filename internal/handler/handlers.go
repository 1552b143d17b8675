package handler

import (
	"github.com/processflow/server/internal/config"
	httphandler "github.com/processflow/server/internal/handler/http"
	"github.com/processflow/server/internal/logger"
	"github.com/processflow/server/internal/service"
)

type Handlers struct {
	HTTP *httphandler.Handler
}

func NewHandlers(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = httphandler.NewHandler(services, cfg, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
