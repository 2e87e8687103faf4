package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/nfrund/profiledash/internal/config"
	"github.com/nfrund/profiledash/internal/email"
	"github.com/nfrund/profiledash/internal/logging"
	"github.com/nfrund/profiledash/internal/server"
)

func main() {
	logging.New()
	cfg := config.New()
	ctx := context.Background()

	storage, err := server.OpenStorage(ctx, cfg, slog.Default())
	if err != nil {
		slog.Error("Failed to open user storage", "error", err)
		os.Exit(1)
	}

	mailer, err := email.NewSender(cfg, slog.Default())
	if err != nil {
		slog.Error("Failed to initialize email service", "error", err)
		os.Exit(1)
	}

	s := server.New(server.Dependencies{
		Config:       cfg,
		Email:        mailer,
		Users:        storage.Users,
		Logger:       slog.Default(),
		DemoUser:     storage.Demo,
		CloseStorage: storage.Close,
	})

	if err := s.RegisterRoutes(ctx); err != nil {
		slog.Error("Failed to register routes", "error", err)
		os.Exit(1)
	}

	if err := s.Start(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}
