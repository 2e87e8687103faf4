package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/profiledash/internal/domain"
	"github.com/nfrund/profiledash/internal/middleware"
	"github.com/nfrund/profiledash/internal/view"
	"github.com/nfrund/profiledash/web/src/templates/layouts"
	"github.com/nfrund/profiledash/web/src/templates/pages"
)

// HomeHandler renders the landing page.
type HomeHandler struct {
	users domain.UserRepository
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(users domain.UserRepository) *HomeHandler {
	return &HomeHandler{users: users}
}

// HomeGet renders "/". The page only checks whether the visitor is signed in.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	signedIn := false
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if _, err := h.users.Authenticate(c.Request().Context(), cookie.Value); err == nil {
			signedIn = true
		}
	}

	flashes := view.GetFlashData(c)
	page := layouts.Base("", flashes.Toasts(), pages.Home(signedIn))
	return c.Render(http.StatusOK, "", page)
}
