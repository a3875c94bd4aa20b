package session

import (
	"testing"

	"github.com/coder/websocket"
)

func TestManagerRegisterUnregister(t *testing.T) {
	t.Parallel()

	m := NewManager()
	conn := &websocket.Conn{}

	m.Register("s1", conn)
	if m.GetActive("s1") != conn {
		t.Error("expected registered connection")
	}
	if m.Count() != 1 {
		t.Errorf("expected 1 active session, got %d", m.Count())
	}

	m.Unregister("s1", conn)
	if m.GetActive("s1") != nil {
		t.Error("expected connection to be removed")
	}
	if m.Count() != 0 {
		t.Errorf("expected 0 active sessions, got %d", m.Count())
	}
}

func TestManagerUnregisterIgnoresStaleConn(t *testing.T) {
	t.Parallel()

	m := NewManager()
	current := &websocket.Conn{}
	stale := &websocket.Conn{}

	m.Register("s1", current)
	m.Unregister("s1", stale)

	if m.GetActive("s1") != current {
		t.Error("unregistering a stale connection must not evict the current one")
	}
}
