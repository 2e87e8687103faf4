package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/profiledash/internal/domain"
)

const (
	// UserContextKey holds the authenticated *domain.User.
	UserContextKey = "user"
	// TokenContextKey holds the raw session token the user authenticated with.
	TokenContextKey = "session_token"
	// SessionCookieName is the cookie carrying the session token.
	SessionCookieName = "auth_token"
)

// Authenticator resolves a session token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// Auth creates a middleware that protects HTML routes. Unauthenticated
// requests are redirected to loginPath.
func Auth(store Authenticator, loginPath string) echo.MiddlewareFunc {
	return authenticate(store, func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, loginPath)
	})
}

// APIAuth creates a middleware that protects JSON routes. Unauthenticated
// requests get a 401 with a JSON error body.
func APIAuth(store Authenticator) echo.MiddlewareFunc {
	return authenticate(store, func(c echo.Context) error {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"code":    "unauthenticated",
			"message": "A valid session is required.",
		})
	})
}

func authenticate(store Authenticator, deny echo.HandlerFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return deny(c)
			}
			token := cookie.Value

			user, err := store.Authenticate(c.Request().Context(), token)
			if err != nil || user == nil {
				if err != nil && !errors.Is(err, domain.ErrInvalidCredentials) {
					FromContext(c.Request().Context()).Error("session lookup failed", "error", err)
				}
				// Clear the invalid cookie so the browser stops sending it.
				ClearSessionCookie(c)
				return deny(c)
			}

			c.Set(UserContextKey, user)
			c.Set(TokenContextKey, token)
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user placed in the context by Auth or APIAuth.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(UserContextKey).(*domain.User)
	return user, ok && user != nil
}

// SessionToken returns the session token placed in the context by Auth or APIAuth.
func SessionToken(c echo.Context) string {
	token, _ := c.Get(TokenContextKey).(string)
	return token
}

// SetSessionCookie writes the session cookie for token.
func SetSessionCookie(c echo.Context, token string, maxAge int) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Request().TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie immediately.
func ClearSessionCookie(c echo.Context) {
	SetSessionCookie(c, "", -1)
}
