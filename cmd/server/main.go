package main

import (
	"context"
	"fmt"
	"time"

	"github.com/processflow/server/internal/config"
	"github.com/processflow/server/internal/handler"
	"github.com/processflow/server/internal/logger"
	"github.com/processflow/server/internal/server"
	"github.com/processflow/server/internal/service"
	"github.com/processflow/server/internal/store"
	"github.com/processflow/server/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("processflow-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := store.NewConnectPostgres(connectCtx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err := migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	userRepository := store.NewUserRepository(db, log)
	services := service.NewServices(userRepository, db, cfg, log)

	// The admin account is cosmetic for the rest of the system: a failed
	// bootstrap is logged but never prevents the service from starting.
	if err := services.Bootstrap.EnsureAdmin(connectCtx); err != nil {
		log.Err(err).Msg("admin bootstrap failed, continuing startup")
	}

	handlers, err := handler.NewHandlers(services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
