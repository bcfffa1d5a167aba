package session

import (
	"sync"
	"time"
)

// Session is one plugin connection: an identity plus its mailbox of
// undelivered commands. All mailbox access goes through the session mutex,
// so enqueues and drains on the same session are mutually exclusive while
// unrelated sessions never contend.
type Session struct {
	ID        string
	ProjectID string
	Metadata  map[string]string
	CreatedAt time.Time

	mu      sync.Mutex
	mailbox []Command
	wake    chan struct{} // buffered(1), long-poll wakeup signal
}

func newSession(id, projectID string, metadata map[string]string) *Session {
	return &Session{
		ID:        id,
		ProjectID: projectID,
		Metadata:  metadata,
		CreatedAt: time.Now(),
		wake:      make(chan struct{}, 1),
	}
}

// Enqueue appends a command to the mailbox tail and signals any waiting
// long-poll. The command is visible to the next Drain and only that one.
func (s *Session) Enqueue(cmd Command) {
	s.mu.Lock()
	s.mailbox = append(s.mailbox, cmd)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Drain atomically removes and returns all queued commands in FIFO order,
// leaving the mailbox empty. Returns an empty slice when nothing is pending.
func (s *Session) Drain() []Command {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.mailbox) == 0 {
		return []Command{}
	}
	drained := s.mailbox
	s.mailbox = nil
	return drained
}

// Pending returns the number of undelivered commands.
func (s *Session) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.mailbox)
}

// Wake returns the wakeup channel for long-poll waiters. A receive means at
// least one enqueue happened since the last drain; the waiter must re-drain.
func (s *Session) Wake() <-chan struct{} {
	return s.wake
}
