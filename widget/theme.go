package widget

import (
	"fmt"
	"strings"
	"sync"
)

// Appearance is the resolved color scheme.
type Appearance int

const (
	Light Appearance = iota
	Dark
)

func (a Appearance) String() string {
	if a == Dark {
		return "dark"
	}
	return "light"
}

// Toggle returns the opposite appearance.
func (a Appearance) Toggle() Appearance {
	if a == Dark {
		return Light
	}
	return Dark
}

// ParseAppearance parses "light" or "dark".
func ParseAppearance(s string) (Appearance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light", "":
		return Light, nil
	case "dark":
		return Dark, nil
	}
	return Light, fmt.Errorf("unknown appearance %q", s)
}

// ThemeHandle owns the current appearance. Create one at startup and pass
// it to every consumer.
type ThemeHandle struct {
	mu      sync.RWMutex
	current Appearance
	nextID  int
	subs    map[int]func(Appearance)
}

// NewThemeHandle returns a handle starting at initial.
func NewThemeHandle(initial Appearance) *ThemeHandle {
	return &ThemeHandle{current: initial, subs: make(map[int]func(Appearance))}
}

// Current returns the active appearance.
func (h *ThemeHandle) Current() Appearance {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Set changes the appearance and notifies subscribers if it changed.
func (h *ThemeHandle) Set(a Appearance) {
	h.mu.Lock()
	if h.current == a {
		h.mu.Unlock()
		return
	}
	h.current = a
	subs := h.subscribersLocked()
	h.mu.Unlock()

	notify(subs, a)
}

// Toggle flips the appearance and returns the new value.
func (h *ThemeHandle) Toggle() Appearance {
	h.mu.Lock()
	next := h.current.Toggle()
	h.current = next
	subs := h.subscribersLocked()
	h.mu.Unlock()

	notify(subs, next)
	return next
}

func (h *ThemeHandle) subscribersLocked() []func(Appearance) {
	subs := make([]func(Appearance), 0, len(h.subs))
	for _, fn := range h.subs {
		subs = append(subs, fn)
	}
	return subs
}

func notify(subs []func(Appearance), a Appearance) {
	for _, fn := range subs {
		fn(a)
	}
}

// Subscribe registers fn for changes. The returned func unsubscribes.
func (h *ThemeHandle) Subscribe(fn func(Appearance)) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}
