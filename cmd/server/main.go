// Package main implements the entry point for the repetify API server,
// which manages users' flashcard decks and their review schedules.
package main

import (
	"log"

	"github.com/phrazzld/repetify-api/internal/config"
	"github.com/phrazzld/repetify-api/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
