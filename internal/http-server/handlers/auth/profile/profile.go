// Package profile handles PATCH /profile: a partial update of the
// current user. Absent fields stay untouched; email never changes.
package profile

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/childhope-org/childhope-backend/internal/http-server/middlewarectx"
	"github.com/childhope-org/childhope-backend/internal/http-server/response"
	"github.com/childhope-org/childhope-backend/internal/lib/sl"
	"github.com/childhope-org/childhope-backend/internal/services/auth"
)

type UpdateRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	Role    *string `json:"role,omitempty"`
}

func New(log *slog.Logger, facades *auth.Factory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.profile.New"
		var updateRequest UpdateRequest

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

		if err := render.DecodeJSON(r.Body, &updateRequest); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		facade := facades.ForSession(sess)
		ok = facade.UpdateProfile(r.Context(), auth.ProfilePatch{
			Name:    updateRequest.Name,
			Phone:   updateRequest.Phone,
			Address: updateRequest.Address,
			Role:    updateRequest.Role,
		})
		if !ok {
			log.Error("profile update rejected")
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("could not update profile"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(sess.Current()))
	}
}
