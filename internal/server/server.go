package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/profiledash/internal/config"
	"github.com/nfrund/profiledash/internal/domain"
	"github.com/nfrund/profiledash/internal/email"
	"github.com/nfrund/profiledash/internal/handlers"
	appmiddleware "github.com/nfrund/profiledash/internal/middleware"
	"github.com/nfrund/profiledash/internal/module"
	"github.com/nfrund/profiledash/internal/pubsub"
	"github.com/nfrund/profiledash/internal/rendering"
	"github.com/nfrund/profiledash/web"
	"github.com/samber/do/v2"
)

// Dependencies are the core services a Server is built from.
type Dependencies struct {
	Config config.Provider
	Users  domain.UserRepository
	Bus    *pubsub.WatermillBridge
	Logger *slog.Logger
	// Email defaults to logging messages.
	Email email.Sender
	// Modules default to AppModules().
	Modules []module.Module
	// DemoUser, when set, enables GET /dev/login for that user.
	DemoUser *domain.User
	// CloseStorage releases the repository's connection on shutdown.
	CloseStorage func(context.Context) error
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	E        *echo.Echo
	Cfg      config.Provider
	Injector *do.RootScope

	users        domain.UserRepository
	mailer       email.Sender
	bus          *pubsub.WatermillBridge
	modules      []module.Module
	demoUser     *domain.User
	closeStorage func(context.Context) error
	logger       *slog.Logger
}

// New wires the echo instance and registers the core services with the injector.
func New(deps Dependencies) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	bus := deps.Bus
	if bus == nil {
		bus = pubsub.NewWatermillBridge()
	}
	mods := deps.Modules
	if mods == nil {
		mods = AppModules()
	}

	mailer := deps.Email
	if mailer == nil {
		mailer = email.NewLogSender(deps.Config.GetEmailSender(), logger)
	}

	renderer := rendering.NewUniversalRenderer()

	injector := do.New()
	do.ProvideValue[config.Provider](injector, deps.Config)
	do.ProvideValue[domain.UserRepository](injector, deps.Users)
	do.ProvideValue[rendering.Renderer](injector, renderer)
	do.ProvideValue[pubsub.Publisher](injector, bus)
	do.ProvideValue[pubsub.Subscriber](injector, bus)
	do.ProvideValue[email.Sender](injector, mailer)
	do.ProvideValue(injector, logger)

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Validator = handlers.NewValidator()
	setupErrorHandling(e)

	e.Use(appmiddleware.RequestID())
	e.Use(appmiddleware.Logger)
	e.Use(echomw.Recover())

	// Flash messages live in a signed cookie session.
	store := sessions.NewCookieStore([]byte(deps.Config.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	return &Server{
		E:            e,
		Cfg:          deps.Config,
		Injector:     injector,
		users:        deps.Users,
		mailer:       mailer,
		bus:          bus,
		modules:      mods,
		demoUser:     deps.DemoUser,
		closeStorage: deps.CloseStorage,
		logger:       logger,
	}
}

// UserStore is a getter for the server's user store, useful for testing.
func (s *Server) UserStore() domain.UserRepository {
	return s.users
}

// Shutdown stops the HTTP server and releases every service, in reverse
// order of startup.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if err := s.E.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	for i := len(s.modules) - 1; i >= 0; i-- {
		m := s.modules[i]
		if err := m.Shutdown(ctx); err != nil {
			s.logger.Error("module shutdown failed", "module", m.Name(), "error", err)
			errs = append(errs, err)
		}
	}
	if err := s.bus.Close(); err != nil {
		errs = append(errs, err)
	}
	if s.closeStorage != nil {
		if err := s.closeStorage(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	s.Injector.Shutdown()
	return errors.Join(errs...)
}
