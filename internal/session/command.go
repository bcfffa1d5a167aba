package session

import "time"

// Command types delivered to the Studio plugin.
const (
	CommandRunLua     = "RUN_LUA"
	CommandDiagnostic = "DIAGNOSTIC"
)

// Command is a single instruction awaiting pickup by the polling plugin.
// Immutable once created; ownership transfers to the client at delivery.
type Command struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Payload    map[string]any `json:"payload"`
	EnqueuedAt time.Time      `json:"enqueued_at"`
}
