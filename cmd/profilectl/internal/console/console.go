// Package console adapts the profile editor to a plain terminal.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/nfrund/profiledash/internal/profileeditor"
	"github.com/nfrund/profiledash/internal/userapi"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// Printer writes editor notifications and navigation to the terminal.
type Printer struct {
	out     io.Writer
	errOut  io.Writer
	baseURL string

	mu     sync.Mutex
	failed bool
	target string
}

// NewPrinter creates a Printer. Navigation targets are shown relative to baseURL.
func NewPrinter(out, errOut io.Writer, baseURL string) *Printer {
	return &Printer{out: out, errOut: errOut, baseURL: strings.TrimRight(baseURL, "/")}
}

func (p *Printer) Success(message string) {
	fmt.Fprintln(p.out, successStyle.Render(message))
}

func (p *Printer) Error(message string) {
	p.mu.Lock()
	p.failed = true
	p.mu.Unlock()
	fmt.Fprintln(p.errOut, errorStyle.Render(message))
}

func (p *Printer) Navigate(_ context.Context, path string) error {
	p.mu.Lock()
	p.target = path
	p.mu.Unlock()
	fmt.Fprintln(p.out, subtleStyle.Render("Redirecting to "+p.baseURL+path))
	return nil
}

// Failed reports whether an error notification was printed.
func (p *Printer) Failed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.failed
}

// Target is the last navigation path, if any.
func (p *Printer) Target() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.target
}

// SignerOut revokes the current session.
type SignerOut interface {
	SignOut(ctx context.Context) error
}

// Session ends the CLI's session through the API.
type Session struct {
	Client SignerOut
}

// Terminate signs out. A 401 means the session is already gone, which is the
// normal case right after the account was deleted.
func (s Session) Terminate(ctx context.Context) error {
	err := s.Client.SignOut(ctx)
	var se *userapi.StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized {
		return nil
	}
	return err
}

var (
	_ profileeditor.Notifier       = (*Printer)(nil)
	_ profileeditor.Navigator      = (*Printer)(nil)
	_ profileeditor.SessionManager = Session{}
)
