package view

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	flashSessionName = "flash-session"
	flashKeySuccess  = "success"
	flashKeyError    = "error"
)

// FlashData holds the flash messages consumed for a single render.
type FlashData struct {
	Success []string
	Error   []string
}

// Toasts converts the flashes into toasts for the layout.
func (f FlashData) Toasts() []Toast {
	out := make([]Toast, 0, len(f.Success)+len(f.Error))
	for _, m := range f.Success {
		out = append(out, Toast{Kind: ToastSuccess, Message: m})
	}
	for _, m := range f.Error {
		out = append(out, Toast{Kind: ToastError, Message: m})
	}
	return out
}

// setFlash sets a flash message in the session.
func setFlash(c echo.Context, key, message string) {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return
	}
	sess.AddFlash(message, key)
	_ = sess.Save(c.Request(), c.Response())
}

// SetFlashSuccess sets a success flash message.
func SetFlashSuccess(c echo.Context, message string) {
	setFlash(c, flashKeySuccess, message)
}

// SetFlashError sets an error flash message.
func SetFlashError(c echo.Context, message string) {
	setFlash(c, flashKeyError, message)
}

// GetFlashData retrieves and clears flash messages from the session.
func GetFlashData(c echo.Context) FlashData {
	var data FlashData

	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return data
	}

	// Flashes() retrieves and then clears the flashes from the session.
	successFlashes := sess.Flashes(flashKeySuccess)
	errorFlashes := sess.Flashes(flashKeyError)

	for _, f := range successFlashes {
		if s, ok := f.(string); ok {
			data.Success = append(data.Success, s)
		}
	}
	for _, f := range errorFlashes {
		if s, ok := f.(string); ok {
			data.Error = append(data.Error, s)
		}
	}

	// Persist the clearing of flashes.
	if len(successFlashes) > 0 || len(errorFlashes) > 0 {
		_ = sess.Save(c.Request(), c.Response())
	}
	return data
}
