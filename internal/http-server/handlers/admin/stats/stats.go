// Package stats handles GET /admin/stats. Admin-only, enforced by the
// role middleware.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/childhope-org/childhope-backend/internal/http-server/response"
	"github.com/childhope-org/childhope-backend/internal/lib/sl"
	"github.com/childhope-org/childhope-backend/internal/services/admin"
)

type Dashboarder interface {
	Dashboard(ctx context.Context) (*admin.DashboardStats, error)
}

func New(log *slog.Logger, service Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.stats.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		dashboard, err := service.Dashboard(r.Context())
		if err != nil {
			log.Error("failed to aggregate dashboard", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not load dashboard"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(dashboard))
	}
}
