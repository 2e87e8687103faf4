package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nfrund/profiledash/internal/config"
	"github.com/nfrund/profiledash/internal/database"
	"github.com/nfrund/profiledash/internal/domain"
)

// Demo account seeded by the memory driver.
const (
	demoEmail = "demo@example.com"
	demoName  = "Demo User"
)

// Storage is the user repository selected by DB_DRIVER.
type Storage struct {
	Users domain.UserRepository
	// Demo is the seeded account; only the memory driver has one.
	Demo  *domain.User
	Close func(context.Context) error
}

// OpenStorage connects the repository configured by cfg.
func OpenStorage(ctx context.Context, cfg config.Provider, logger *slog.Logger) (*Storage, error) {
	switch cfg.GetDBDriver() {
	case config.DriverMemory:
		store := database.NewMemoryUserStore()
		demo, err := store.CreateUser(ctx, demoEmail, demoName, "")
		if err != nil {
			return nil, fmt.Errorf("seed demo user: %w", err)
		}
		logger.Info("using in-memory user store", "demo_user", demo.IDString(), "login", "/dev/login")
		return &Storage{
			Users: store,
			Demo:  demo,
			Close: func(context.Context) error { return nil },
		}, nil

	case config.DriverSurreal:
		db, err := database.NewDB(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		return &Storage{
			Users: database.NewUserStore(db),
			Close: db.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.GetDBDriver())
	}
}
