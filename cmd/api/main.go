package main

import (
	"os"

	"github.com/tailorwise/tailorwise/internal/pkg/logger"
	"github.com/tailorwise/tailorwise/internal/server"
)

// @title TailorWise API
// @version 1.0
// @description Management backend for a tailoring training institute: admissions, courses, batches, attendance, finance, inventory, certificates and messaging.

// @contact.name API Support
// @contact.email support@tailorwise.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// NewServer orchestrates config loading, database and Redis setup,
	// dependency wiring and route registration.
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
