package plugin

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/devblox/relay/internal/httputil"
	"github.com/devblox/relay/internal/session"
	"github.com/devblox/relay/internal/svc"
	"github.com/devblox/relay/internal/types"
)

// PollCommandsHandler drains the session mailbox for the Studio plugin.
// With wait_ms > 0 the request is held open until a command arrives or the
// wait elapses, so an idle plugin does not have to hammer the endpoint.
func PollCommandsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.PollRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.BadRequest(w, "invalid request")
			return
		}
		if req.SessionID == "" {
			httputil.BadRequest(w, "session_id is required")
			return
		}
		if req.WaitMs < 0 {
			req.WaitMs = 0
		}

		cmds, err := svcCtx.Relay.Poll(r.Context(), req.SessionID, time.Duration(req.WaitMs)*time.Millisecond)
		if err != nil {
			switch {
			case errors.Is(err, session.ErrNotFound):
				httputil.NotFound(w, "session not found")
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				// Plugin went away mid-poll, nothing to write
			default:
				httputil.InternalError(w, "")
			}
			return
		}

		views := make([]types.CommandView, 0, len(cmds))
		for _, cmd := range cmds {
			views = append(views, types.CommandView{
				ID:         cmd.ID,
				Type:       cmd.Type,
				Payload:    cmd.Payload,
				EnqueuedAt: cmd.EnqueuedAt.UTC().Format(time.RFC3339),
			})
		}

		httputil.OkJSON(w, &types.PollResponse{Commands: views})
	}
}
