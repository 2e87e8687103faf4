package profile

import (
	"context"
	"sync"

	"github.com/nfrund/profiledash/internal/profileeditor"
	"github.com/nfrund/profiledash/internal/userapi"
)

// SessionRevoker ends a session by token.
type SessionRevoker interface {
	RevokeSession(ctx context.Context, token string) error
}

// APIFactory builds the ProfileAPI an editor talks to on behalf of a session.
type APIFactory func(token string) (profileeditor.ProfileAPI, error)

// NewHTTPAPIFactory returns an APIFactory backed by the user API at baseURL.
func NewHTTPAPIFactory(baseURL string) APIFactory {
	return func(token string) (profileeditor.ProfileAPI, error) {
		return userapi.New(baseURL, token)
	}
}

// sessionTerminator revokes one session token in the store.
type sessionTerminator struct {
	store SessionRevoker
	token string
}

func (s sessionTerminator) Terminate(ctx context.Context) error {
	return s.store.RevokeSession(ctx, s.token)
}

// redirectNavigator records where the editor wants to go. The handler turns
// the recorded path into an HX-Redirect on the response.
type redirectNavigator struct {
	mu     sync.Mutex
	target string
}

func (n *redirectNavigator) Navigate(_ context.Context, path string) error {
	n.mu.Lock()
	n.target = path
	n.mu.Unlock()
	return nil
}

// Target returns the recorded path and clears it.
func (n *redirectNavigator) Target() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	t := n.target
	n.target = ""
	return t
}

var (
	_ profileeditor.SessionManager = sessionTerminator{}
	_ profileeditor.Navigator      = (*redirectNavigator)(nil)
)
