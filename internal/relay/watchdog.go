package relay

import (
	"github.com/robfig/cron/v3"

	"github.com/devblox/relay/internal/logging"
	"github.com/devblox/relay/internal/session"
)

// DefaultBacklogThreshold is how many undelivered commands a single mailbox
// may hold before the watchdog starts warning about it.
const DefaultBacklogThreshold = 50

// Watchdog periodically surveys session mailboxes. Mailboxes are unbounded
// on purpose: a session that registers but never polls accumulates commands
// indefinitely, and silently dropping them would be worse than growing. The
// watchdog makes that growth visible: gauges for dashboards, warnings for
// logs. It never evicts anything.
type Watchdog struct {
	registry  *session.Registry
	threshold int
	cron      *cron.Cron
}

// NewWatchdog creates a watchdog over the registry. A threshold of 0 falls
// back to DefaultBacklogThreshold.
func NewWatchdog(registry *session.Registry, threshold int) *Watchdog {
	if threshold <= 0 {
		threshold = DefaultBacklogThreshold
	}
	return &Watchdog{
		registry:  registry,
		threshold: threshold,
	}
}

// Start begins the minutely sweep.
func (w *Watchdog) Start() {
	w.cron = cron.New()
	w.cron.AddFunc("@every 1m", w.sweep)
	w.cron.Start()
}

// Stop halts the sweep. Safe to call without Start.
func (w *Watchdog) Stop() {
	if w.cron != nil {
		w.cron.Stop()
	}
}

// sweep refreshes the gauges and warns about backlogged mailboxes.
func (w *Watchdog) sweep() {
	sessions := w.registry.Snapshot()

	total := 0
	for _, sess := range sessions {
		pending := sess.Pending()
		total += pending
		if pending > w.threshold {
			logging.Warnf("Session %s (project %s) has %d undelivered commands, plugin not polling?",
				sess.ID, sess.ProjectID, pending)
		}
	}

	metricSessionsActive.Set(float64(len(sessions)))
	metricCommandsPending.Set(float64(total))
}
