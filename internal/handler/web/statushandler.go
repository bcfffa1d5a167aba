package web

import (
	"errors"
	"net/http"

	"github.com/devblox/relay/internal/httputil"
	"github.com/devblox/relay/internal/session"
	"github.com/devblox/relay/internal/svc"
	"github.com/devblox/relay/internal/types"
)

// StatusHandler reports whether the session's plugin has pinged recently.
// The front end polls this to render the connected/disconnected badge.
func StatusHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.StatusRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.BadRequest(w, "invalid request")
			return
		}
		if req.ProjectID == "" || req.SessionID == "" {
			httputil.BadRequest(w, "project_id and sessionId are required")
			return
		}

		connected, err := svcCtx.Relay.Status(req.ProjectID, req.SessionID)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				httputil.NotFound(w, "session not found")
				return
			}
			httputil.InternalError(w, "")
			return
		}

		httputil.OkJSON(w, &types.StatusResponse{Connected: connected})
	}
}
