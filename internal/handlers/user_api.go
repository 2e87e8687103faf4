package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/profiledash/internal/domain"
	"github.com/nfrund/profiledash/internal/middleware"
	"github.com/nfrund/profiledash/internal/pubsub"
)

// Typed events published by the user API.
var (
	ProfileUpdated = pubsub.NewEvent[domain.ProfileUpdatedEvent](domain.TopicProfileUpdated)
	AccountDeleted = pubsub.NewEvent[domain.AccountDeletedEvent](domain.TopicAccountDeleted)
)

// UserAPIHandler serves the JSON endpoints the profile editor talks to.
// Every route expects middleware.APIAuth to have run.
type UserAPIHandler struct {
	users     domain.UserRepository
	publisher pubsub.Publisher
	now       func() time.Time
}

// NewUserAPIHandler creates a new UserAPIHandler.
func NewUserAPIHandler(users domain.UserRepository, publisher pubsub.Publisher) *UserAPIHandler {
	return &UserAPIHandler{
		users:     users,
		publisher: publisher,
		now:       time.Now,
	}
}

// Me returns the authenticated user (GET /api/user/me).
func (h *UserAPIHandler) Me(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthenticated(c)
	}
	return c.JSON(http.StatusOK, NewUserResponse(user))
}

// UpdateProfile writes name, email and image for the user in the path
// (PATCH /api/user/:id). Users may only update themselves.
func (h *UserAPIHandler) UpdateProfile(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthenticated(c)
	}
	log := middleware.FromContext(c.Request().Context())

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "bad_request", Message: "Malformed request body."})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: "bad_request", Message: "A user id is required."})
	}

	id, err := domain.ParseUserID(req.ID)
	if err != nil {
		return respondError(c, err)
	}
	if id.String() != user.IDString() {
		log.Warn("profile update for another user refused", "user_id", user.IDString(), "target_id", id.String())
		return respondError(c, domain.ErrForbidden)
	}

	update := domain.ProfileUpdate{Name: req.Name, Email: req.Email, Image: req.Image}
	updated, err := h.users.UpdateProfile(c.Request().Context(), id, update)
	if err != nil {
		log.Error("profile update failed", "user_id", id.String(), "error", err)
		return respondError(c, err)
	}

	event := domain.ProfileUpdatedEvent{UserID: id.String(), Profile: update, UpdatedAt: h.now().UTC()}
	if err := pubsub.Publish(c.Request().Context(), h.publisher, ProfileUpdated, id.String(), event); err != nil {
		// The update is committed; a lost event must not fail the request.
		log.Error("failed to publish profile update event", "user_id", id.String(), "error", err)
	}

	return c.JSON(http.StatusOK, NewUserResponse(updated))
}

// DeleteAccount deletes the authenticated user (DELETE /api/user/delete).
// The user is identified by the session alone.
func (h *UserAPIHandler) DeleteAccount(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return unauthenticated(c)
	}
	log := middleware.FromContext(c.Request().Context())

	if err := h.users.Delete(c.Request().Context(), user.ID); err != nil {
		log.Error("account deletion failed", "user_id", user.IDString(), "error", err)
		return respondError(c, err)
	}

	event := domain.AccountDeletedEvent{UserID: user.IDString(), Email: user.Email, DeletedAt: h.now().UTC()}
	if err := pubsub.Publish(c.Request().Context(), h.publisher, AccountDeleted, user.IDString(), event); err != nil {
		log.Error("failed to publish account deletion event", "user_id", user.IDString(), "error", err)
	}

	log.Info("account deleted", "user_id", user.IDString())
	return c.JSON(http.StatusOK, StatusResponse{Status: "deleted"})
}

// SignOut revokes the caller's session and expires the cookie (DELETE /api/session).
func (h *UserAPIHandler) SignOut(c echo.Context) error {
	token := middleware.SessionToken(c)
	if err := h.users.RevokeSession(c.Request().Context(), token); err != nil {
		middleware.FromContext(c.Request().Context()).Error("failed to revoke session", "error", err)
		return respondError(c, err)
	}
	middleware.ClearSessionCookie(c)
	return c.JSON(http.StatusOK, StatusResponse{Status: "signed_out"})
}

func unauthenticated(c echo.Context) error {
	return respondError(c, domain.ErrInvalidCredentials)
}

// respondError maps domain errors onto HTTP status codes.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Code: "not_found", Message: "User not found."})
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, ErrorResponse{Code: "forbidden", Message: "You can only change your own profile."})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Code: "unauthenticated", Message: "A valid session is required."})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "internal", Message: "Something went wrong."})
	}
}
