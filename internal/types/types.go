package types

// API request/response shapes for the relay HTTP surface.

// CommandView is the wire form of a queued command.
type CommandView struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Payload    map[string]any `json:"payload"`
	EnqueuedAt string         `json:"enqueued_at"`
}

// Session registration (web front end)

type RegisterSessionRequest struct {
	ProjectID string            `json:"project_id"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

type RegisterSessionResponse struct {
	SessionID string `json:"session_id"`
	ProjectID string `json:"project_id"`
	CreatedAt string `json:"created_at"`
}

type RemoveSessionRequest struct {
	SessionID string `path:"sessionId"`
}

type RemoveSessionResponse struct {
	Success bool `json:"success"`
}

// Prompt submission (web front end)

type SubmitPromptRequest struct {
	ProjectID string `json:"project_id"`
	SessionID string `json:"session_id"`
	Prompt    string `json:"prompt"`
}

type SubmitPromptResponse struct {
	Success bool        `json:"success"`
	Command CommandView `json:"command"`
}

// Plugin connectivity

type StatusRequest struct {
	ProjectID string `form:"project_id"`
	SessionID string `path:"sessionId"`
}

type StatusResponse struct {
	Connected bool `json:"connected"`
}

type HeartbeatRequest struct {
	SessionID string `json:"session_id"`
}

type HeartbeatResponse struct {
	OK bool `json:"ok"`
}

// Command polling (plugin)

type PollRequest struct {
	SessionID string `form:"session_id"`
	WaitMs    int    `form:"wait_ms"`
}

type PollResponse struct {
	Commands []CommandView `json:"commands"`
}

// Quota

type UsageResponse struct {
	Used int `json:"used"`
	Cap  int `json:"cap"`
}

type RedeemCodeRequest struct {
	Code string `json:"code"`
}

type RedeemCodeResponse struct {
	Granted bool `json:"granted"`
	Bonus   int  `json:"bonus,omitempty"`
	Cap     int  `json:"cap"`
}

// Projects

type ProjectView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type CreateProjectRequest struct {
	Name string `json:"name"`
}
