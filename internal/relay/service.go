package relay

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/devblox/relay/internal/audit"
	"github.com/devblox/relay/internal/liveness"
	"github.com/devblox/relay/internal/logging"
	"github.com/devblox/relay/internal/provider"
	"github.com/devblox/relay/internal/quota"
	"github.com/devblox/relay/internal/session"
)

// ErrEmptyPrompt is returned for a blank prompt before any state is touched.
var ErrEmptyPrompt = errors.New("prompt must not be empty")

// DefaultMaxWait caps how long a poll request may be held open.
const DefaultMaxWait = 25 * time.Second

// Service orchestrates the command relay: it admits prompts (subject to
// quota), turns them into commands via the AI generator, parks them in
// session mailboxes, and serves poll, status and heartbeat requests.
type Service struct {
	registry  *session.Registry
	quota     *quota.Ledger
	liveness  *liveness.Monitor
	generator provider.Generator
	audit     *audit.Worker

	system  string        // system instructions for the generator
	maxWait time.Duration // long-poll ceiling
}

// Options carries the collaborators and tuning for a Service.
type Options struct {
	Registry  *session.Registry
	Quota     *quota.Ledger
	Liveness  *liveness.Monitor
	Generator provider.Generator
	Audit     *audit.Worker
	System    string
	MaxWait   time.Duration
}

// NewService wires a relay service. Audit may be nil (no external log).
func NewService(opts Options) *Service {
	maxWait := opts.MaxWait
	if maxWait <= 0 {
		maxWait = DefaultMaxWait
	}
	return &Service{
		registry:  opts.Registry,
		quota:     opts.Quota,
		liveness:  opts.Liveness,
		generator: opts.Generator,
		audit:     opts.Audit,
		system:    opts.System,
		maxWait:   maxWait,
	}
}

// Register creates a session under a project and returns it.
func (s *Service) Register(projectID string, metadata map[string]string) *session.Session {
	sess := s.registry.Register(projectID, metadata)
	metricSessionsActive.Set(float64(s.registry.Len()))
	s.logAudit(audit.Record{Event: "register", Key: sess.ID, Detail: map[string]string{"project": projectID}})
	return sess
}

// Remove tears a session down. Idempotent.
func (s *Service) Remove(sessionID string) {
	s.registry.Remove(sessionID)
	s.liveness.Forget(sessionID)
	metricSessionsActive.Set(float64(s.registry.Len()))
}

// SubmitPrompt admits a prompt against the client's daily quota, generates a
// Lua command from it, and enqueues the command for the session's next poll.
//
// Quota policy: allowance is reserved atomically before the provider call
// and refunded if generation fails, so users are only charged for confirmed
// generations while concurrent submissions can never over-admit past the cap.
// The provider call itself runs without any lock held.
func (s *Service) SubmitPrompt(ctx context.Context, projectID, sessionID, clientKey, prompt string) (session.Command, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return session.Command{}, ErrEmptyPrompt
	}

	// Fail before charging quota when the session is unknown
	if _, err := s.registry.Lookup(projectID, sessionID); err != nil {
		return session.Command{}, err
	}

	if err := s.quota.CheckAndConsume(clientKey, 1); err != nil {
		metricQuotaRejected.Inc()
		return session.Command{}, err
	}

	text, err := s.generator.Generate(ctx, prompt, s.system)
	if err != nil {
		s.quota.Refund(clientKey, 1)
		metricProviderFailures.Inc()
		return session.Command{}, fmt.Errorf("generation failed: %w", err)
	}

	cmd := s.buildCommand(prompt, text)

	// Re-resolve: the session may have been removed while generating
	sess, err := s.registry.Lookup(projectID, sessionID)
	if err != nil {
		s.quota.Refund(clientKey, 1)
		return session.Command{}, err
	}
	sess.Enqueue(cmd)
	metricCommandsEnqueued.Inc()

	s.logAudit(audit.Record{Event: "submit", Key: clientKey, Detail: map[string]string{
		"session": sessionID,
		"command": cmd.ID,
		"type":    cmd.Type,
	}})
	return cmd, nil
}

// buildCommand turns raw generator output into a well-formed command. The
// plugin only ever sees RUN_LUA with usable source, or a DIAGNOSTIC it can
// show to the user. Never malformed payloads.
func (s *Service) buildCommand(prompt, raw string) session.Command {
	cmd := session.Command{
		ID:         ulid.Make().String(),
		EnqueuedAt: time.Now(),
	}

	code := ExtractCode(raw)
	if code == "" {
		logging.Warnf("Generator returned no usable code for prompt %q", prompt)
		cmd.Type = session.CommandDiagnostic
		cmd.Payload = map[string]any{
			"message": "The AI response contained no usable code. Try rephrasing the prompt.",
			"prompt":  prompt,
		}
		return cmd
	}

	cmd.Type = session.CommandRunLua
	cmd.Payload = map[string]any{
		"source": code,
		"prompt": prompt,
	}
	return cmd
}

// Poll drains the session mailbox. With maxWait > 0 and an empty mailbox,
// the call is held open until a command arrives or the wait elapses. It
// always returns by its deadline, with whatever is present then.
func (s *Service) Poll(ctx context.Context, sessionID string, maxWait time.Duration) ([]session.Command, error) {
	sess, err := s.registry.Get(sessionID)
	if err != nil {
		return nil, err
	}

	cmds := sess.Drain()
	if len(cmds) > 0 || maxWait <= 0 {
		metricCommandsDelivered.Add(float64(len(cmds)))
		return cmds, nil
	}

	if maxWait > s.maxWait {
		maxWait = s.maxWait
	}
	timer := time.NewTimer(maxWait)
	defer timer.Stop()

	for {
		select {
		case <-sess.Wake():
			if cmds := sess.Drain(); len(cmds) > 0 {
				metricCommandsDelivered.Add(float64(len(cmds)))
				return cmds, nil
			}
			// Stale wakeup (a concurrent poll won the race), keep waiting
		case <-timer.C:
			cmds := sess.Drain()
			metricCommandsDelivered.Add(float64(len(cmds)))
			return cmds, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Heartbeat records a plugin ping for the session. Always succeeds, even
// for sessions the registry no longer knows, matching the fire-and-forget
// nature of the plugin's ping loop.
func (s *Service) Heartbeat(sessionID string) {
	s.liveness.Heartbeat(sessionID)
}

// Status reports whether the session's plugin has heartbeated recently.
func (s *Service) Status(projectID, sessionID string) (bool, error) {
	if _, err := s.registry.Lookup(projectID, sessionID); err != nil {
		return false, err
	}
	return s.liveness.IsConnected(sessionID), nil
}

// Usage reports the quota meter for a client key.
func (s *Service) Usage(clientKey string) (used, cap int) {
	return s.quota.Usage(clientKey)
}

// Redeem applies a promo code to a client key and returns the granted bonus.
func (s *Service) Redeem(clientKey, code string) (int, error) {
	granted, err := s.quota.Redeem(clientKey, code)
	if err != nil {
		return 0, err
	}
	s.logAudit(audit.Record{Event: "redeem", Key: clientKey, Detail: map[string]string{
		"code": code,
	}})
	return granted, nil
}

func (s *Service) logAudit(rec audit.Record) {
	if s.audit != nil {
		s.audit.Log(rec)
	}
}
