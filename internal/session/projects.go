package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Project groups the sessions of one client installation.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ProjectStore is the in-memory project list backing the dashboard picker.
type ProjectStore struct {
	mu       sync.RWMutex
	projects []Project
}

// NewProjectStore creates a store seeded with a default project, so a fresh
// install has something to register sessions under.
func NewProjectStore() *ProjectStore {
	ps := &ProjectStore{}
	ps.Create("New Project")
	return ps
}

// Create adds a project with a fresh ID and returns it.
func (ps *ProjectStore) Create(name string) Project {
	if name == "" {
		name = "Untitled"
	}
	p := Project{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}

	ps.mu.Lock()
	ps.projects = append(ps.projects, p)
	ps.mu.Unlock()
	return p
}

// List returns all projects in creation order.
func (ps *ProjectStore) List() []Project {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	out := make([]Project, len(ps.projects))
	copy(out, ps.projects)
	return out
}
