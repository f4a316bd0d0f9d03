// Package logout handles POST /logout: clears the server-side session
// named by the caller's token. Always succeeds.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/childhope-org/childhope-backend/internal/http-server/middlewarectx"
	"github.com/childhope-org/childhope-backend/internal/http-server/response"
	"github.com/childhope-org/childhope-backend/internal/services/auth"
)

func New(log *slog.Logger, facades *auth.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.logout.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		sess, ok := middlewarectx.SessionFromContext(r.Context())
		if !ok {
			log.Error("session missing from context")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
			return
		}

		facades.ForSession(sess).Logout(r.Context())
		log.Info("user logged out")
		render.JSON(w, r, response.OK())
	}
}
