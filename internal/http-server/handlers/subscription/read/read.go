// Package read handles GET /subscription: the snapshot attached to the
// caller's session, if any.
package read

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/childhope-org/childhope-backend/internal/http-server/middlewarectx"
	"github.com/childhope-org/childhope-backend/internal/http-server/response"
)

func New(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := middlewarectx.UserFromContext(r.Context())
		if !ok {
			log.Error("user missing from context")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
			return
		}
		if user.Subscription == nil {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("no subscription"))
			return
		}
		render.JSON(w, r, response.StatusOKWithData(user.Subscription))
	}
}
