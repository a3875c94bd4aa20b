// Package session provides the WebSocket interview conversation transport.
package session

import (
	"log/slog"
	"sync"

	"github.com/coder/websocket"
)

// Manager tracks active interview connections. Each session id owns at
// most one connection; registering a duplicate closes the previous one,
// which also guarantees one in-flight turn per session.
type Manager struct {
	mu     sync.RWMutex
	active map[string]*websocket.Conn
}

// NewManager creates a new session manager.
func NewManager() *Manager {
	return &Manager{active: make(map[string]*websocket.Conn)}
}

// GetActive returns the active connection for a session, or nil.
func (m *Manager) GetActive(sessionID string) *websocket.Conn {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active[sessionID]
}

// Register adds a new connection for a session.
func (m *Manager) Register(sessionID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, exists := m.active[sessionID]; exists && existing != conn {
		_ = existing.Close(websocket.StatusNormalClosure, "session replaced")
	}

	m.active[sessionID] = conn
	slog.Info("Interview session registered", "session_id", sessionID)
}

// Unregister removes a connection for a session.
func (m *Manager) Unregister(sessionID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if current, exists := m.active[sessionID]; exists && current == conn {
		delete(m.active, sessionID)
		slog.Info("Interview session unregistered", "session_id", sessionID)
	}
}

// Count returns the number of active interview connections.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.active)
}
