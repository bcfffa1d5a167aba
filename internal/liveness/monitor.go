package liveness

import (
	"sync"
	"time"
)

// DefaultWindow is how long after the last heartbeat a plugin still counts
// as connected.
const DefaultWindow = 20 * time.Second

// Monitor records plugin heartbeats and derives connectivity from recency.
// "Connected" is never stored; it is computed against the window on every
// query, so state naturally decays without a sweeper.
type Monitor struct {
	window time.Duration
	now    func() time.Time

	mu       sync.RWMutex
	lastSeen map[string]time.Time
}

// NewMonitor creates a monitor with the given window. A zero window falls
// back to DefaultWindow.
func NewMonitor(window time.Duration) *Monitor {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Monitor{
		window:   window,
		now:      time.Now,
		lastSeen: make(map[string]time.Time),
	}
}

// Heartbeat records now as the last-seen time for the identity. The empty
// identity is the process-wide singleton used by single-plugin deployments.
func (m *Monitor) Heartbeat(identity string) {
	now := m.now()
	m.mu.Lock()
	m.lastSeen[identity] = now
	m.mu.Unlock()
}

// IsConnected reports whether a heartbeat arrived within the window.
// An identity that never sent a heartbeat is disconnected.
func (m *Monitor) IsConnected(identity string) bool {
	m.mu.RLock()
	last, ok := m.lastSeen[identity]
	m.mu.RUnlock()

	if !ok {
		return false
	}
	return m.now().Sub(last) < m.window
}

// LastSeen returns the last heartbeat time for an identity, if any.
func (m *Monitor) LastSeen(identity string) (time.Time, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	last, ok := m.lastSeen[identity]
	return last, ok
}

// Forget drops the identity's record (session teardown).
func (m *Monitor) Forget(identity string) {
	m.mu.Lock()
	delete(m.lastSeen, identity)
	m.mu.Unlock()
}
