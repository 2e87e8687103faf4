package view

import "sync"

// ToastKind distinguishes success from failure toasts.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast is a transient message shown to the user.
type Toast struct {
	Kind    ToastKind
	Message string
}

// ToastQueue buffers toasts until the next response renders them. It
// implements profileeditor.Notifier.
type ToastQueue struct {
	mu     sync.Mutex
	toasts []Toast
}

// Success queues a success toast.
func (q *ToastQueue) Success(message string) { q.push(ToastSuccess, message) }

// Error queues an error toast.
func (q *ToastQueue) Error(message string) { q.push(ToastError, message) }

func (q *ToastQueue) push(kind ToastKind, message string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.toasts = append(q.toasts, Toast{Kind: kind, Message: message})
}

// Drain returns the queued toasts and empties the queue.
func (q *ToastQueue) Drain() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.toasts
	q.toasts = nil
	return out
}
