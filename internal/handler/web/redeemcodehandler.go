package web

import (
	"errors"
	"net/http"

	"github.com/devblox/relay/internal/httputil"
	"github.com/devblox/relay/internal/middleware"
	"github.com/devblox/relay/internal/quota"
	"github.com/devblox/relay/internal/svc"
	"github.com/devblox/relay/internal/types"
)

// RedeemCodeHandler applies a promo code to the caller's daily allowance.
// Each code works once per client.
func RedeemCodeHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.RedeemCodeRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.BadRequest(w, "invalid request body")
			return
		}
		if req.Code == "" {
			httputil.BadRequest(w, "code is required")
			return
		}

		clientKey := middleware.ClientUIDFromContext(r.Context())
		bonus, err := svcCtx.Relay.Redeem(clientKey, req.Code)
		if err != nil {
			switch {
			case errors.Is(err, quota.ErrUnknownCode):
				httputil.NotFound(w, "unknown code")
			case errors.Is(err, quota.ErrCodeUsed):
				httputil.ErrorWithCode(w, http.StatusConflict, "code already used")
			default:
				httputil.InternalError(w, "")
			}
			return
		}

		_, cap := svcCtx.Relay.Usage(clientKey)
		httputil.OkJSON(w, &types.RedeemCodeResponse{
			Granted: true,
			Bonus:   bonus,
			Cap:     cap,
		})
	}
}
