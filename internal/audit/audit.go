package audit

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/devblox/relay/internal/logging"
)

// Record is one append-only audit event.
type Record struct {
	Time   time.Time         `json:"time"`
	Event  string            `json:"event"` // register, submit, redeem, …
	Key    string            `json:"key"`   // client or session identity
	Detail map[string]string `json:"detail,omitempty"`
}

// Appender writes a record to an external sink.
type Appender interface {
	Append(ctx context.Context, rec Record) error
}

// Worker decouples the request path from the sink: Log never blocks and
// never fails the caller. Sink failures are logged locally and dropped.
type Worker struct {
	appender Appender
	ch       chan Record
	dropped  atomic.Int64
}

// NewWorker creates a worker with the given channel buffer.
func NewWorker(appender Appender, buffer int) *Worker {
	if buffer <= 0 {
		buffer = 256
	}
	return &Worker{
		appender: appender,
		ch:       make(chan Record, buffer),
	}
}

// Run drains the record channel until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case rec := <-w.ch:
			appendCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			if err := w.appender.Append(appendCtx, rec); err != nil {
				logging.Warnf("Audit append failed (event=%s): %v", rec.Event, err)
			}
			cancel()
		}
	}
}

// Log submits a record for background delivery. When the buffer is full the
// record is dropped and counted; the primary request must not wait.
func (w *Worker) Log(rec Record) {
	if rec.Time.IsZero() {
		rec.Time = time.Now()
	}
	select {
	case w.ch <- rec:
	default:
		n := w.dropped.Add(1)
		logging.Warnf("Audit buffer full, dropped record (event=%s, total dropped=%d)", rec.Event, n)
	}
}

// Dropped returns how many records were discarded due to backpressure.
func (w *Worker) Dropped() int64 {
	return w.dropped.Load()
}

// Nop is an Appender that discards everything (audit disabled).
type Nop struct{}

func (Nop) Append(ctx context.Context, rec Record) error { return nil }
