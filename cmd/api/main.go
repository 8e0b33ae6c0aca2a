package main

import (
	"os"

	"github.com/tnpcell/portal/internal/pkg/logger"
	"github.com/tnpcell/portal/internal/server"
)

// @title TNP Cell Portal API
// @version 1.0
// @description Backend for the college training and placement portal

// @host localhost:8080
// @BasePath /api
// @schemes http https

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until a shutdown signal arrives.
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
