// Package main is the entry point for the readability analyzer server.
//
// main stays minimal: read configuration from the environment, build the
// logger, and hand off to internal/server, where the real wiring lives.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sakif/readability-analyzer/internal/server"
)

// insecureDefaultSecret is a development fallback for SESSION_SECRET.
// Any production deployment MUST set its own secret:
//
//	SESSION_SECRET=$(openssl rand -hex 32)
const insecureDefaultSecret = "replace_this_with_a_strong_secret"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	dbPath := "data/users.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}

	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", dbDir),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = insecureDefaultSecret
		logger.Warn("SESSION_SECRET not set, using the insecure development default")
	}

	cfg := server.Config{
		Port:          port,
		DBPath:        dbPath,
		SessionSecret: secret,
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until the server is shut down via SIGINT/SIGTERM.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
