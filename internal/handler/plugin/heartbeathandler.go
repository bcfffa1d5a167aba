package plugin

import (
	"net/http"

	"github.com/devblox/relay/internal/httputil"
	"github.com/devblox/relay/internal/svc"
	"github.com/devblox/relay/internal/types"
)

// HeartbeatHandler records a plugin ping. Accepts pings for sessions the
// registry no longer knows: the plugin fires these on a timer and a stale
// ping is harmless.
func HeartbeatHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.HeartbeatRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.BadRequest(w, "invalid request body")
			return
		}

		svcCtx.Relay.Heartbeat(req.SessionID)

		httputil.OkJSON(w, &types.HeartbeatResponse{OK: true})
	}
}
