package web

import (
	"net/http"
	"time"

	"github.com/devblox/relay/internal/httputil"
	"github.com/devblox/relay/internal/svc"
	"github.com/devblox/relay/internal/types"
)

// RegisterSessionHandler creates a session under a project. The returned
// session ID is what the Studio plugin polls with.
func RegisterSessionHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.RegisterSessionRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.BadRequest(w, "invalid request body")
			return
		}
		if req.ProjectID == "" {
			httputil.BadRequest(w, "project_id is required")
			return
		}

		sess := svcCtx.Relay.Register(req.ProjectID, req.Metadata)

		httputil.OkJSON(w, &types.RegisterSessionResponse{
			SessionID: sess.ID,
			ProjectID: sess.ProjectID,
			CreatedAt: sess.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
}
