package web

import (
	"net/http"

	"github.com/devblox/relay/internal/httputil"
	"github.com/devblox/relay/internal/svc"
	"github.com/devblox/relay/internal/types"
)

// RemoveSessionHandler tears a session down. Removing an unknown session is
// not an error.
func RemoveSessionHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := httputil.PathVar(r, "sessionId")
		if sessionID == "" {
			httputil.BadRequest(w, "sessionId is required")
			return
		}

		svcCtx.Relay.Remove(sessionID)

		httputil.OkJSON(w, &types.RemoveSessionResponse{Success: true})
	}
}
