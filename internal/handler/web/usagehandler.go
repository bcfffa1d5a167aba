package web

import (
	"net/http"

	"github.com/devblox/relay/internal/httputil"
	"github.com/devblox/relay/internal/middleware"
	"github.com/devblox/relay/internal/svc"
	"github.com/devblox/relay/internal/types"
)

// UsageHandler reports the caller's quota meter for the current day.
func UsageHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientKey := middleware.ClientUIDFromContext(r.Context())
		used, cap := svcCtx.Relay.Usage(clientKey)

		httputil.OkJSON(w, &types.UsageResponse{Used: used, Cap: cap})
	}
}
