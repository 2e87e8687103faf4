package profile

import (
	"log/slog"
	"sync"
	"time"

	"github.com/nfrund/profiledash/internal/profileeditor"
	"github.com/nfrund/profiledash/internal/view"
)

// mount is one editor together with the per-session adapters it reports to.
type mount struct {
	editor *profileeditor.Editor
	toasts *view.ToastQueue
	nav    *redirectNavigator

	mu       sync.Mutex
	lastSeen time.Time
}

func (m *mount) touch(now time.Time) {
	m.mu.Lock()
	m.lastSeen = now
	m.mu.Unlock()
}

func (m *mount) idleSince() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSeen
}

// editorRegistry keeps at most one mounted editor per session token.
type editorRegistry struct {
	mu     sync.Mutex
	mounts map[string]*mount
	now    func() time.Time
	log    *slog.Logger
}

func newEditorRegistry(logger *slog.Logger) *editorRegistry {
	return &editorRegistry{
		mounts: make(map[string]*mount),
		now:    time.Now,
		log:    logger,
	}
}

// Mount stores m under token, closing whatever editor the session had before.
func (r *editorRegistry) Mount(token string, m *mount) {
	m.touch(r.now())
	r.mu.Lock()
	prev := r.mounts[token]
	r.mounts[token] = m
	r.mu.Unlock()

	if prev != nil {
		prev.editor.Close()
	}
}

// Get returns the session's editor, or nil when none is mounted.
func (r *editorRegistry) Get(token string) *mount {
	r.mu.Lock()
	m := r.mounts[token]
	r.mu.Unlock()
	if m != nil {
		m.touch(r.now())
	}
	return m
}

// Unmount removes and closes the session's editor, if m is still the one
// mounted for it.
func (r *editorRegistry) Unmount(token string, m *mount) {
	r.mu.Lock()
	if r.mounts[token] != m {
		r.mu.Unlock()
		return
	}
	delete(r.mounts, token)
	r.mu.Unlock()
	m.editor.Close()
}

// Sweep closes editors that have not been used for maxIdle and returns how
// many were removed.
func (r *editorRegistry) Sweep(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	var stale []*mount
	for token, m := range r.mounts {
		if m.idleSince().Before(cutoff) {
			stale = append(stale, m)
			delete(r.mounts, token)
		}
	}
	r.mu.Unlock()

	for _, m := range stale {
		m.editor.Close()
	}
	if len(stale) > 0 {
		r.log.Debug("swept idle profile editors", "count", len(stale))
	}
	return len(stale)
}

// CloseAll unmounts every editor.
func (r *editorRegistry) CloseAll() {
	r.mu.Lock()
	mounts := r.mounts
	r.mounts = make(map[string]*mount)
	r.mu.Unlock()

	for _, m := range mounts {
		m.editor.Close()
	}
}

// Len reports how many editors are mounted.
func (r *editorRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.mounts)
}
