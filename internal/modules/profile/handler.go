package profile

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/profiledash/internal/domain"
	"github.com/nfrund/profiledash/internal/middleware"
	"github.com/nfrund/profiledash/internal/modules/profile/view"
	"github.com/nfrund/profiledash/internal/profileeditor"
	"github.com/nfrund/profiledash/internal/rendering"
	gview "github.com/nfrund/profiledash/internal/view"
	"github.com/nfrund/profiledash/web/src/templates/layouts"
	g "maragu.dev/gomponents"
)

// PagePath is where the profile page is mounted.
const PagePath = "/app/profile"

// Handler serves the profile page and the htmx endpoints that drive its editor.
type Handler struct {
	sessions SessionRevoker
	newAPI   APIFactory
	editors  *editorRegistry
	renderer rendering.Renderer
	log      *slog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(sessions SessionRevoker, newAPI APIFactory, editors *editorRegistry, renderer rendering.Renderer, logger *slog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		newAPI:   newAPI,
		editors:  editors,
		renderer: renderer,
		log:      logger,
	}
}

// Get renders the profile page and mounts a fresh editor for the session.
func (h *Handler) Get(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	token := middleware.SessionToken(c)

	api, err := h.newAPI(token)
	if err != nil {
		return fmt.Errorf("build profile api client: %w", err)
	}

	m := &mount{toasts: &gview.ToastQueue{}, nav: &redirectNavigator{}}
	m.editor = profileeditor.New(userProfile(user), profileeditor.Dependencies{
		API:       api,
		Notifier:  m.toasts,
		Session:   sessionTerminator{store: h.sessions, token: token},
		Navigator: m.nav,
		Logger:    h.log,
	})
	h.editors.Mount(token, m)

	page := layouts.Base("Profile", gview.GetFlashData(c).Toasts(), view.Profile(viewData(m.editor.Snapshot())))
	return h.renderer.RenderPage(c, http.StatusOK, page)
}

// SetField records one keystroke's worth of form state.
func (h *Handler) SetField(c echo.Context) error {
	m := h.current(c)
	if m == nil {
		return h.expired(c)
	}
	name := c.Param("field")
	field, err := profileeditor.ParseField(name)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := m.editor.SetField(field, c.FormValue(name)); err != nil {
		return h.expired(c)
	}
	return c.NoContent(http.StatusNoContent)
}

// Save submits the form. Any field values posted with the request are applied
// first so a save never races the last keystroke.
func (h *Handler) Save(c echo.Context) error {
	m := h.current(c)
	if m == nil {
		return h.expired(c)
	}
	for _, f := range []profileeditor.Field{profileeditor.FieldName, profileeditor.FieldEmail, profileeditor.FieldAvatarURL} {
		if v, ok := formValue(c, f.String()); ok {
			_ = m.editor.SetField(f, v)
		}
	}

	err := m.editor.Save(c.Request().Context())
	switch {
	case errors.Is(err, profileeditor.ErrClosed):
		return h.expired(c)
	case errors.Is(err, profileeditor.ErrSaveInProgress):
		// The running save renders the final button state.
	case err != nil:
		return err
	}
	return h.fragment(c, m, view.SaveButton(m.editor.Saving()))
}

// OpenDeleteDialog shows the confirmation dialog.
func (h *Handler) OpenDeleteDialog(c echo.Context) error {
	m := h.current(c)
	if m == nil {
		return h.expired(c)
	}
	if err := m.editor.OpenDeleteDialog(); errors.Is(err, profileeditor.ErrClosed) {
		return h.expired(c)
	}
	return h.dialog(c, m)
}

// CloseDeleteDialog dismisses the confirmation dialog.
func (h *Handler) CloseDeleteDialog(c echo.Context) error {
	m := h.current(c)
	if m == nil {
		return h.expired(c)
	}
	if err := m.editor.CloseDeleteDialog(); errors.Is(err, profileeditor.ErrClosed) {
		return h.expired(c)
	}
	return h.dialog(c, m)
}

// ConfirmDelete deletes the account. On success the session cookie is cleared
// and the browser is sent wherever the editor navigated.
func (h *Handler) ConfirmDelete(c echo.Context) error {
	m := h.current(c)
	if m == nil {
		return h.expired(c)
	}
	token := middleware.SessionToken(c)

	err := m.editor.ConfirmDelete(c.Request().Context())
	switch {
	case errors.Is(err, profileeditor.ErrClosed):
		return h.expired(c)
	case errors.Is(err, profileeditor.ErrNotConfirming), errors.Is(err, profileeditor.ErrDeleteInProgress):
		return h.dialog(c, m)
	case err != nil:
		return err
	}

	target := m.nav.Target()
	if target == "" {
		return h.dialog(c, m)
	}

	middleware.ClearSessionCookie(c)
	h.editors.Unmount(token, m)
	// The toasts outlive this page, so hand them to the next one as flashes.
	for _, t := range m.toasts.Drain() {
		flash(c, t)
	}
	return redirect(c, target)
}

// current returns the editor mounted for the request's session.
func (h *Handler) current(c echo.Context) *mount {
	return h.editors.Get(middleware.SessionToken(c))
}

// expired sends the browser back to the page so a new editor gets mounted.
func (h *Handler) expired(c echo.Context) error {
	return redirect(c, PagePath)
}

func (h *Handler) dialog(c echo.Context, m *mount) error {
	snap := m.editor.Snapshot()
	return h.fragment(c, m, view.DeleteDialog(snap.DialogOpen, snap.DeleteState == profileeditor.DeleteDeleting))
}

// fragment renders an htmx partial followed by any toasts the editor queued.
// Plain form posts get a redirect back to the page with the toasts as flashes.
func (h *Handler) fragment(c echo.Context, m *mount, node g.Node) error {
	toasts := m.toasts.Drain()
	if !isHTMX(c) {
		for _, t := range toasts {
			flash(c, t)
		}
		return c.Redirect(http.StatusSeeOther, PagePath)
	}
	return h.renderer.RenderPage(c, http.StatusOK, g.Group{node, layouts.ToastsOOB(toasts)})
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// redirect navigates the browser, through htmx when the request came from it.
func redirect(c echo.Context, path string) error {
	if isHTMX(c) {
		c.Response().Header().Set("HX-Redirect", path)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, path)
}

func flash(c echo.Context, t gview.Toast) {
	if t.Kind == gview.ToastError {
		gview.SetFlashError(c, t.Message)
		return
	}
	gview.SetFlashSuccess(c, t.Message)
}

// formValue reports whether key was posted at all, so an emptied input is
// told apart from an absent one.
func formValue(c echo.Context, key string) (string, bool) {
	params, err := c.FormParams()
	if err != nil {
		return "", false
	}
	vs, ok := params[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

func userProfile(u *domain.User) profileeditor.UserProfile {
	return profileeditor.UserProfile{
		ID:    u.IDString(),
		Name:  u.DisplayName(),
		Email: u.Email,
		Image: u.AvatarURL(),
	}
}

func viewData(s profileeditor.Snapshot) view.Data {
	return view.Data{
		Name:       s.Form.Name,
		Email:      s.Form.Email,
		AvatarURL:  s.Form.AvatarURL,
		Saving:     s.Saving,
		DialogOpen: s.DialogOpen,
		Deleting:   s.DeleteState == profileeditor.DeleteDeleting,
	}
}
