package tui

import "sync"

// notice is a message the editor asked to show.
type notice struct {
	err  bool
	text string
}

// notices collects editor notifications until the next render. The editor
// reports from the goroutine running its request, so access is locked.
type notices struct {
	mu    sync.Mutex
	items []notice
}

func (n *notices) Success(message string) { n.push(notice{text: message}) }
func (n *notices) Error(message string)   { n.push(notice{err: true, text: message}) }

func (n *notices) push(x notice) {
	n.mu.Lock()
	n.items = append(n.items, x)
	n.mu.Unlock()
}

func (n *notices) drain() []notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.items
	n.items = nil
	return out
}
