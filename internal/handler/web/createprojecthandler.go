package web

import (
	"net/http"
	"time"

	"github.com/devblox/relay/internal/httputil"
	"github.com/devblox/relay/internal/svc"
	"github.com/devblox/relay/internal/types"
)

func CreateProjectHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.CreateProjectRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.BadRequest(w, "invalid request body")
			return
		}

		p := svcCtx.Projects.Create(req.Name)

		httputil.OkJSON(w, &types.ProjectView{
			ID:        p.ID,
			Name:      p.Name,
			CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
}
