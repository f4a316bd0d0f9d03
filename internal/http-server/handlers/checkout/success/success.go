// Package success handles GET /checkout/success, the return landing
// after a hosted checkout. It only echoes the provider session id; the
// donation itself is committed by the webhook, never here.
package success

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/childhope-org/childhope-backend/internal/http-server/response"
)

func New(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("session_id")
		if sessionID == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("missing session_id"))
			return
		}
		log.Info("checkout completed", slog.String("session_id", sessionID))
		render.JSON(w, r, response.StatusOKWithData(map[string]string{
			"session_id": sessionID,
		}))
	}
}
