// Package login handles POST /login.
package login

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/childhope-org/childhope-backend/internal/http-server/response"
	"github.com/childhope-org/childhope-backend/internal/lib/sl"
	"github.com/childhope-org/childhope-backend/internal/services/auth"
	"github.com/childhope-org/childhope-backend/internal/session"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func New(log *slog.Logger, facades *auth.Factory, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.login.New"
		var loginRequest LoginRequest

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if err := render.DecodeJSON(r.Body, &loginRequest); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(loginRequest); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		sess := sessions.New()
		facade := facades.ForSession(sess)
		if !facade.Login(r.Context(), loginRequest.Email, loginRequest.Password) {
			log.Error("incorrect email or password", slog.String("email", loginRequest.Email))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("incorrect email or password"))
			return
		}

		user := sess.Current()
		log.Info("user logged in", slog.String("user_id", user.ID))
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"token": user.AccessToken,
			"user":  user,
		}))
	}
}
