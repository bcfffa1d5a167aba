package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a (project, session) pair is unknown.
var ErrNotFound = errors.New("session not found")

// Registry owns all live sessions. The registry mutex only guards the index;
// mailbox operations take the per-session mutex instead.
//
// Sessions live until Remove is called; there is no idle expiry, so a
// client that registers and disappears leaks its session for the process
// lifetime. The relay watchdog reports such sessions rather than reaping
// them.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session // keyed by session ID
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
	}
}

// Register creates a new session with an empty mailbox under a fresh unique
// session ID and returns it. Uniqueness comes from the UUID generator, not
// from registry bookkeeping.
func (r *Registry) Register(projectID string, metadata map[string]string) *Session {
	s := newSession(uuid.New().String(), projectID, metadata)

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

// Lookup returns the session for the (project, session) pair. A session ID
// that exists but belongs to a different project is ErrNotFound: session
// IDs are not transferable across projects.
func (r *Registry) Lookup(projectID, sessionID string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[sessionID]
	r.mu.RUnlock()

	if !ok || s.ProjectID != projectID {
		return nil, ErrNotFound
	}
	return s, nil
}

// Get returns the session by ID alone (plugin endpoints that carry only the
// session token).
func (r *Registry) Get(sessionID string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[sessionID]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Remove deletes a session. Idempotent; removing an unknown ID is a no-op.
func (r *Registry) Remove(sessionID string) {
	r.mu.Lock()
	delete(r.sessions, sessionID)
	r.mu.Unlock()
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Snapshot returns the current sessions. The slice is a copy; the sessions
// themselves are shared.
func (r *Registry) Snapshot() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out
}
