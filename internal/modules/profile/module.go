package profile

import (
	"context"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/profiledash/internal/config"
	"github.com/nfrund/profiledash/internal/domain"
	"github.com/nfrund/profiledash/internal/module"
	"github.com/nfrund/profiledash/internal/rendering"
	"github.com/samber/do/v2"
)

// Dependencies are optional overrides for the module.
type Dependencies struct {
	// NewAPI builds the client each editor saves and deletes through.
	// Defaults to the HTTP user API at config USER_API_URL.
	NewAPI APIFactory
}

// Module mounts the profile editor under /app/profile.
type Module struct {
	module.BaseModule
	newAPI  APIFactory
	editors *editorRegistry
	handler *Handler

	stopSweep context.CancelFunc
	swept     chan struct{}
}

func New(deps Dependencies) *Module {
	return &Module{newAPI: deps.NewAPI}
}

func (m *Module) Name() string {
	return "profile"
}

func (m *Module) Boot(ctx context.Context, group *echo.Group, injector do.Injector) error {
	cfg := do.MustInvoke[config.Provider](injector)
	users := do.MustInvoke[domain.UserRepository](injector)
	renderer := do.MustInvoke[rendering.Renderer](injector)
	logger := do.MustInvoke[*slog.Logger](injector).With("module", m.Name())

	if m.newAPI == nil {
		m.newAPI = NewHTTPAPIFactory(cfg.GetUserAPIURL())
	}
	m.editors = newEditorRegistry(logger)
	m.handler = NewHandler(users, m.newAPI, m.editors, renderer, logger)

	group.GET("", m.handler.Get)
	group.POST("/field/:field", m.handler.SetField)
	group.POST("/save", m.handler.Save)
	group.POST("/delete/open", m.handler.OpenDeleteDialog)
	group.POST("/delete/close", m.handler.CloseDeleteDialog)
	group.POST("/delete/confirm", m.handler.ConfirmDelete)

	sweepCtx, cancel := context.WithCancel(ctx)
	m.stopSweep = cancel
	m.swept = make(chan struct{})
	go m.sweep(sweepCtx, cfg.GetEditorIdleTimeout())
	return nil
}

// sweep periodically closes editors whose page was abandoned.
func (m *Module) sweep(ctx context.Context, idle time.Duration) {
	defer close(m.swept)
	interval := idle / 2
	if interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.editors.Sweep(idle)
		}
	}
}

func (m *Module) Shutdown(ctx context.Context) error {
	if m.stopSweep == nil {
		return nil
	}
	m.stopSweep()
	select {
	case <-m.swept:
	case <-ctx.Done():
		return ctx.Err()
	}
	m.editors.CloseAll()
	return nil
}
