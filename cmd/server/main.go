// Package main is the entry point for the blog API server.
//
// Configuration comes from the environment:
//
//	PORT         listening port (default 3000)
//	DB_PATH      SQLite database file (default data/blog.db)
//	DATABASE_URL when set, use PostgreSQL instead of SQLite
//	SESSION_TTL_MINUTES  session inactivity window (default 24h)
//
// Any startup failure — bad config, unreachable database, schema
// creation error — exits the process; the server never serves without
// its schema in place.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/tanvir/blog-api/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	port := 3000
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	dbPath := "data/blog.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}

	databaseURL := os.Getenv("DATABASE_URL")

	// The sqlite backend needs its parent directory to exist.
	if databaseURL == "" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", filepath.Dir(dbPath)),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	sessionTTL := 24 * time.Hour
	if ttlStr := os.Getenv("SESSION_TTL_MINUTES"); ttlStr != "" {
		minutes, err := strconv.Atoi(ttlStr)
		if err != nil || minutes <= 0 {
			logger.Error("invalid SESSION_TTL_MINUTES value", slog.String("value", ttlStr))
			os.Exit(1)
		}
		sessionTTL = time.Duration(minutes) * time.Minute
	}

	cfg := server.Config{
		Port:        port,
		DBPath:      dbPath,
		DatabaseURL: databaseURL,
		SessionTTL:  sessionTTL,
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
