package web

import (
	"net/http"
	"time"

	"github.com/devblox/relay/internal/httputil"
	"github.com/devblox/relay/internal/svc"
	"github.com/devblox/relay/internal/types"
)

func ListProjectsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects := svcCtx.Projects.List()

		views := make([]types.ProjectView, 0, len(projects))
		for _, p := range projects {
			views = append(views, types.ProjectView{
				ID:        p.ID,
				Name:      p.Name,
				CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
			})
		}

		httputil.OkJSON(w, views)
	}
}
