// Package main loads the demo data set into the database:
// four sample events and the test user user@gmail.com / 123.
//
// Usage (from the project root, ideally against a fresh database):
//
//	DB_PATH=data/events.db go run ./cmd/seed
package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/sakif/event-registration/internal/auth"
	sqliteRepo "github.com/sakif/event-registration/internal/repository/sqlite"
	"github.com/sakif/event-registration/internal/seed"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Same .env / DB_PATH convention as cmd/server, so seeding targets the
	// database the server will read.
	_ = godotenv.Load()

	dbPath := "data/events.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logger.Error("failed to create database directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := sqliteRepo.New(dbPath)
	if err != nil {
		logger.Error("failed to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	if err := seed.Run(context.Background(), db, db, auth.NewPasswordService()); err != nil {
		logger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("seed data created",
		slog.String("database", dbPath),
		slog.String("testUser", seed.TestUserEmail),
		slog.Int("events", len(seed.Events())),
	)
}
