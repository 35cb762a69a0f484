// Package toast implements the dashboard's ephemeral notification
// channel: short success/error messages that stack and self-expire.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long each toast stays visible.
const DefaultTTL = 3000 * time.Millisecond

// Kind classifies a toast.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Toast is one ephemeral message.
type Toast struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
}

// Center holds the active toasts. Each toast expires exactly one TTL
// after its own push, independent of later pushes; there is no cap on
// how many stack.
type Center struct {
	ttl time.Duration

	mu        sync.Mutex
	active    []Toast
	listeners []func()
}

// NewCenter creates a toast center. ttl <= 0 selects DefaultTTL.
func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl}
}

// Push appends a toast and arms its expiry timer.
func (c *Center) Push(message string, kind Kind) Toast {
	t := Toast{ID: uuid.NewString(), Message: message, Kind: kind}
	c.mu.Lock()
	c.active = append(c.active, t)
	c.mu.Unlock()
	c.notify()
	time.AfterFunc(c.ttl, func() { c.Dismiss(t.ID) })
	return t
}

// Success pushes a success toast.
func (c *Center) Success(message string) { c.Push(message, KindSuccess) }

// Error pushes an error toast.
func (c *Center) Error(message string) { c.Push(message, KindError) }

// Dismiss removes a toast immediately. Dismissing an already-expired id
// is a no-op.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	removed := false
	for i, t := range c.active {
		if t.ID == id {
			c.active = append(c.active[:i], c.active[i+1:]...)
			removed = true
			break
		}
	}
	c.mu.Unlock()
	if removed {
		c.notify()
	}
}

// Active returns the toasts currently displayed, oldest first.
func (c *Center) Active() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Toast, len(c.active))
	copy(out, c.active)
	return out
}

// OnChange registers a listener fired after every push, dismissal or
// expiry. Listeners must not block.
func (c *Center) OnChange(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

func (c *Center) notify() {
	c.mu.Lock()
	listeners := make([]func(), len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}
