// Package main is the entry point for the photostream server.
//
// The main package is kept minimal — its job is to:
// 1. Read configuration (env vars, optionally a .env file)
// 2. Create dependencies (logger, captioning client)
// 3. Start the application
//
// All actual logic lives in imported packages (internal/server,
// internal/handler, etc.). The cmd/ directory is a Go convention for
// executable entry points; a project may have several (cmd/server, cmd/cli),
// each with its own main.go.
package main

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/sakif/photostream/internal/captioner"
	"github.com/sakif/photostream/internal/captioner/gemini"
	"github.com/sakif/photostream/internal/seed"
	"github.com/sakif/photostream/internal/server"
)

func main() {
	// === 1. SET UP LOGGING ===
	// slog.NewTextHandler outputs human-readable structured logs to the
	// terminal. In production you'd raise the level to Info or Warn.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// === 2. READ CONFIGURATION ===
	// A .env file is optional — a missing file is not an error, env vars set
	// in the shell simply take over.
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded configuration from .env")
	}

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	// === 3. INITIALIZE THE CAPTION ASSISTANT ===
	// The captioner is optional — without GEMINI_API_KEY the server still
	// starts, and /api/caption degrades to the fixed fallback suggestion.
	// The creation flow is never blocked by this collaborator.
	var assistant captioner.Captioner
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		cfg := gemini.DefaultConfig(apiKey)
		if model := os.Getenv("GEMINI_MODEL"); model != "" {
			cfg.Model = model
		}

		client, err := gemini.New(cfg, logger)
		if err != nil {
			logger.Warn("caption assistant unavailable — /api/caption will use the fallback",
				slog.String("error", err.Error()),
			)
		} else {
			assistant = client
			logger.Info("caption assistant ready", slog.String("model", cfg.Model))
		}
	} else {
		logger.Warn("GEMINI_API_KEY not set — /api/caption will use the fallback")
	}

	// === 4. CREATE AND START THE SERVER ===
	cfg := server.Config{
		Port:        port,
		CurrentUser: seed.CurrentUser(),
		SeedPosts:   seed.Posts(),
	}

	srv, err := server.New(cfg, logger, assistant)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
