// Package session broadcasts session lifecycle events (login, logout,
// session-invalid) to in-process subscribers. The notifier is constructed
// once at application start and torn down on shutdown; nothing here relies
// on package-level state.
package session

import (
	"sync"
	"time"
)

type EventKind string

const (
	Login          EventKind = "login"
	Logout         EventKind = "logout"
	SessionInvalid EventKind = "session-invalid"
)

type Event struct {
	Kind   EventKind `json:"kind"`
	UserID string    `json:"user_id,omitempty"`
	Detail string    `json:"detail,omitempty"`
	At     time.Time `json:"at"`
}

type Handler func(Event)

// Notifier fans events out to subscribers. Publish is synchronous; handlers
// must not block.
type Notifier struct {
	mu     sync.RWMutex
	subs   map[EventKind]map[uint64]Handler
	nextID uint64
	closed bool
}

func NewNotifier() *Notifier {
	return &Notifier{
		subs: make(map[EventKind]map[uint64]Handler),
	}
}

// Subscribe registers a handler for one event kind and returns the
// unsubscribe handle. Subscribing after Close is a no-op.
func (n *Notifier) Subscribe(kind EventKind, fn Handler) (unsubscribe func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return func() {}
	}

	if n.subs[kind] == nil {
		n.subs[kind] = make(map[uint64]Handler)
	}
	id := n.nextID
	n.nextID++
	n.subs[kind][id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs[kind], id)
	}
}

func (n *Notifier) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now()
	}

	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	handlers := make([]Handler, 0, len(n.subs[e.Kind]))
	for _, fn := range n.subs[e.Kind] {
		handlers = append(handlers, fn)
	}
	n.mu.RUnlock()

	for _, fn := range handlers {
		fn(e)
	}
}

// Close drops all subscribers; subsequent Publish and Subscribe calls are
// no-ops.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	n.subs = make(map[EventKind]map[uint64]Handler)
}
