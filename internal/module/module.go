package module

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/samber/do/v2"
)

// Module defines the contract for a self-contained application feature.
type Module interface {
	// Name returns a unique identifier for the module.
	Name() string

	// Boot is called once the injector holds every core service.
	// This is the phase for setting up routes and starting background processes.
	Boot(ctx context.Context, router *echo.Group, injector do.Injector) error

	// Shutdown is called during graceful application shutdown.
	// This is the phase for cleaning up resources and stopping background processes.
	Shutdown(ctx context.Context) error
}

// BaseModule provides default no-op implementations for Module methods.
// Modules can embed this to avoid implementing methods they don't need.
type BaseModule struct{}

func (m *BaseModule) Boot(ctx context.Context, router *echo.Group, injector do.Injector) error {
	return nil
}

func (m *BaseModule) Shutdown(ctx context.Context) error {
	return nil
}
