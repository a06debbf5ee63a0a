package widget

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ToastKind selects the toast styling.
type ToastKind string

const (
	ToastInfo    ToastKind = "info"
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast is a transient notification.
type Toast struct {
	ID        string
	Kind      ToastKind
	Title     string
	Body      string
	ExpiresAt time.Time
}

// ToastQueue is a bounded FIFO of toasts. When full, the oldest toast is
// dropped. Expired toasts disappear on the next read.
type ToastQueue struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time

	mu     sync.Mutex
	toasts []Toast
}

// Default toast queue settings.
const (
	DefaultToastCapacity = 3
	DefaultToastTTL      = 5 * time.Second
)

// NewToastQueue returns a queue. Non-positive arguments take the defaults.
func NewToastQueue(capacity int, ttl time.Duration) *ToastQueue {
	if capacity <= 0 {
		capacity = DefaultToastCapacity
	}
	if ttl <= 0 {
		ttl = DefaultToastTTL
	}
	return &ToastQueue{capacity: capacity, ttl: ttl, now: time.Now}
}

// Push adds a toast and returns its ID.
func (q *ToastQueue) Push(kind ToastKind, title, body string) string {
	q.mu.Lock()
	defer q.mu.Unlock()
	t := Toast{
		ID:        uuid.NewString(),
		Kind:      kind,
		Title:     title,
		Body:      body,
		ExpiresAt: q.now().Add(q.ttl),
	}
	q.toasts = append(q.toasts, t)
	if over := len(q.toasts) - q.capacity; over > 0 {
		q.toasts = q.toasts[over:]
	}
	return t.ID
}

// Dismiss removes the toast with id. It reports whether one was removed.
func (q *ToastQueue) Dismiss(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, t := range q.toasts {
		if t.ID == id {
			q.toasts = append(q.toasts[:i:i], q.toasts[i+1:]...)
			return true
		}
	}
	return false
}

// Active returns the unexpired toasts, oldest first.
func (q *ToastQueue) Active() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	now := q.now()
	kept := q.toasts[:0:0]
	for _, t := range q.toasts {
		if now.Before(t.ExpiresAt) {
			kept = append(kept, t)
		}
	}
	q.toasts = kept
	return append([]Toast(nil), kept...)
}
