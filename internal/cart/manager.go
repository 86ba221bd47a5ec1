package cart

import (
	"fmt"
	"sync"
)

// DefaultKeyPrefix namespaces persisted carts
const DefaultKeyPrefix = "sika-cart"

// Manager hands out Store handles for cart sessions. Cart state lives in
// Storage; the manager only keeps per-session locks and subscribers while
// they are in use, so idle sessions cost nothing.
type Manager struct {
	storage Storage
	prefix  string
	hub     *hub

	listenerMu sync.RWMutex
	listeners  []Listener
}

// NewManager creates a Manager persisting carts under "<prefix>:<session>"
func NewManager(storage Storage, prefix string) *Manager {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	m := &Manager{
		storage: storage,
		prefix:  prefix,
		hub:     newHub(),
	}
	m.hub.broadcast = m.dispatch
	return m
}

// Session returns the cart for sessionID. Handles for the same session
// serialize their mutations and share subscribers.
func (m *Manager) Session(sessionID string) *Store {
	return &Store{
		sessionID: sessionID,
		key:       m.Key(sessionID),
		storage:   m.storage,
		hub:       m.hub,
	}
}

// Key returns the storage key for sessionID
func (m *Manager) Key(sessionID string) string {
	return fmt.Sprintf("%s:%s", m.prefix, sessionID)
}

// OnChange registers fn for changes to every cart the manager owns
func (m *Manager) OnChange(fn Listener) {
	m.listenerMu.Lock()
	defer m.listenerMu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *Manager) dispatch(c Change) {
	m.listenerMu.RLock()
	defer m.listenerMu.RUnlock()
	for _, fn := range m.listeners {
		fn(c)
	}
}
