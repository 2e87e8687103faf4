package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/profiledash/internal/handlers"
	appmiddleware "github.com/nfrund/profiledash/internal/middleware"
	"github.com/nfrund/profiledash/internal/pubsub"
	"github.com/samber/do/v2"
)

const (
	// mutationsPerMinute caps profile writes and deletions per client.
	mutationsPerMinute = 30
	devSessionTTL      = 24 * time.Hour
)

// RegisterRoutes sets up all the application routes and boots the modules.
func (s *Server) RegisterRoutes(ctx context.Context) error {
	homeHandler := handlers.NewHomeHandler(s.users)
	userAPI := handlers.NewUserAPIHandler(s.users, do.MustInvoke[pubsub.Publisher](s.Injector))
	rateLimiter := appmiddleware.RateLimiter(mutationsPerMinute)

	s.E.GET("/", homeHandler.HomeGet)
	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	api := s.E.Group("/api", appmiddleware.APIAuth(s.users))
	api.GET("/user/me", userAPI.Me)
	api.PATCH("/user/:id", userAPI.UpdateProfile, rateLimiter)
	api.DELETE("/user/delete", userAPI.DeleteAccount, rateLimiter)
	api.DELETE("/session", userAPI.SignOut)

	app := s.E.Group("/app", appmiddleware.Auth(s.users, "/"))
	for _, m := range s.modules {
		if err := m.Boot(ctx, app.Group("/"+m.Name()), s.Injector); err != nil {
			return fmt.Errorf("boot module %s: %w", m.Name(), err)
		}
		s.logger.Info("module booted", "module", m.Name())
	}

	if s.demoUser != nil {
		s.E.GET("/dev/login", s.devLogin)
	}

	return s.subscribeAudit(ctx)
}

// devLogin signs the browser in as the seeded demo user.
func (s *Server) devLogin(c echo.Context) error {
	sess, err := s.users.CreateSession(c.Request().Context(), s.demoUser.ID, devSessionTTL)
	if err != nil {
		return fmt.Errorf("create demo session: %w", err)
	}
	appmiddleware.SetSessionCookie(c, sess.Token, int(devSessionTTL.Seconds()))
	return c.Redirect(http.StatusSeeOther, "/app/profile")
}
