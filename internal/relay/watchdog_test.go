package relay

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/devblox/relay/internal/session"
)

func TestWatchdogSweepUpdatesGauges(t *testing.T) {
	registry := session.NewRegistry()
	w := NewWatchdog(registry, 5)

	s1 := registry.Register("projA", nil)
	s2 := registry.Register("projA", nil)
	for i := 0; i < 3; i++ {
		s1.Enqueue(session.Command{ID: fmt.Sprintf("a-%d", i)})
	}
	// s2 is over threshold: registered, never polled
	for i := 0; i < 8; i++ {
		s2.Enqueue(session.Command{ID: fmt.Sprintf("b-%d", i)})
	}

	w.sweep()

	if got := testutil.ToFloat64(metricSessionsActive); got != 2 {
		t.Errorf("sessions gauge = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metricCommandsPending); got != 11 {
		t.Errorf("pending gauge = %v, want 11", got)
	}

	// Draining brings the gauge back down on the next sweep
	s2.Drain()
	w.sweep()
	if got := testutil.ToFloat64(metricCommandsPending); got != 3 {
		t.Errorf("pending gauge after drain = %v, want 3", got)
	}
}

func TestWatchdogDefaultThreshold(t *testing.T) {
	w := NewWatchdog(session.NewRegistry(), 0)
	if w.threshold != DefaultBacklogThreshold {
		t.Errorf("threshold = %d, want %d", w.threshold, DefaultBacklogThreshold)
	}
}
