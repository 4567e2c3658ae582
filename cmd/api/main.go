package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/studysphere/backend/internal/pkg/logger"
	"github.com/studysphere/backend/internal/server"
)

// @title StudySphere API
// @version 1.0
// @description Backend API for the StudySphere student portal: study materials, announcements, campus chat and an AI study assistant.

// @contact.name API Support
// @contact.email support@studysphere.app

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
	// Local development reads settings from a .env file; absence is fine.
	if err := godotenv.Load(); err == nil {
		logger.Debug().Msg("Loaded environment from .env file")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
