package liveness

import (
	"testing"
	"time"
)

func TestDisconnectedBeforeAnyHeartbeat(t *testing.T) {
	m := NewMonitor(20 * time.Second)
	if m.IsConnected("s1") {
		t.Error("identity with no heartbeat should be disconnected")
	}
}

func TestConnectedWithinWindow(t *testing.T) {
	m := NewMonitor(20 * time.Second)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }
	m.Heartbeat("s1")

	// t = +10s: still connected
	m.now = func() time.Time { return base.Add(10 * time.Second) }
	if !m.IsConnected("s1") {
		t.Error("expected connected 10s after heartbeat")
	}

	// t = +25s: window elapsed
	m.now = func() time.Time { return base.Add(25 * time.Second) }
	if m.IsConnected("s1") {
		t.Error("expected disconnected 25s after heartbeat")
	}
}

func TestHeartbeatRefreshesWindow(t *testing.T) {
	m := NewMonitor(20 * time.Second)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }
	m.Heartbeat("s1")

	m.now = func() time.Time { return base.Add(15 * time.Second) }
	m.Heartbeat("s1")

	m.now = func() time.Time { return base.Add(30 * time.Second) }
	if !m.IsConnected("s1") {
		t.Error("expected connected 15s after refresh")
	}
}

func TestIdentitiesAreIndependent(t *testing.T) {
	m := NewMonitor(20 * time.Second)

	m.Heartbeat("s1")
	if m.IsConnected("s2") {
		t.Error("heartbeat for s1 must not connect s2")
	}

	// Empty identity is the process-wide singleton
	m.Heartbeat("")
	if !m.IsConnected("") {
		t.Error("singleton identity should be connected after heartbeat")
	}
}

func TestForget(t *testing.T) {
	m := NewMonitor(20 * time.Second)
	m.Heartbeat("s1")
	m.Forget("s1")
	if m.IsConnected("s1") {
		t.Error("forgotten identity should be disconnected")
	}
}
