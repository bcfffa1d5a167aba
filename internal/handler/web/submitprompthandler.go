package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/devblox/relay/internal/httputil"
	"github.com/devblox/relay/internal/logging"
	"github.com/devblox/relay/internal/middleware"
	"github.com/devblox/relay/internal/quota"
	"github.com/devblox/relay/internal/relay"
	"github.com/devblox/relay/internal/session"
	"github.com/devblox/relay/internal/svc"
	"github.com/devblox/relay/internal/types"
)

// SubmitPromptHandler turns a user prompt into a queued command for the
// session's plugin. The prompt is charged against the caller's daily quota.
func SubmitPromptHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req types.SubmitPromptRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.BadRequest(w, "invalid request body")
			return
		}
		if req.ProjectID == "" || req.SessionID == "" {
			httputil.BadRequest(w, "project_id and session_id are required")
			return
		}

		clientKey := middleware.ClientUIDFromContext(ctx)
		cmd, err := svcCtx.Relay.SubmitPrompt(ctx, req.ProjectID, req.SessionID, clientKey, req.Prompt)
		if err != nil {
			switch {
			case errors.Is(err, relay.ErrEmptyPrompt):
				httputil.BadRequest(w, "prompt must not be empty")
			case errors.Is(err, session.ErrNotFound):
				httputil.NotFound(w, "session not found")
			case errors.Is(err, quota.ErrExceeded):
				httputil.TooManyRequests(w, "daily limit reached")
			default:
				logging.Errorf("Prompt submission failed: %v", err)
				httputil.ErrorWithCode(w, http.StatusBadGateway, "generation failed, please try again")
			}
			return
		}

		httputil.OkJSON(w, &types.SubmitPromptResponse{
			Success: true,
			Command: types.CommandView{
				ID:         cmd.ID,
				Type:       cmd.Type,
				Payload:    cmd.Payload,
				EnqueuedAt: cmd.EnqueuedAt.UTC().Format(time.RFC3339),
			},
		})
	}
}
