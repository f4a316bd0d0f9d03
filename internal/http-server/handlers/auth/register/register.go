// Package register handles POST /register: creates an account through
// the auth facade and returns the fresh session's token and user.
package register

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

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=donor volunteer"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

func New(log *slog.Logger, facades *auth.Factory, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.register.New"
		var registerRequest RegisterRequest

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if err := render.DecodeJSON(r.Body, &registerRequest); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(registerRequest); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		sess := sessions.New()
		facade := facades.ForSession(sess)
		ok := facade.Register(r.Context(), auth.RegisterRequest{
			Email:    registerRequest.Email,
			Name:     registerRequest.Name,
			Password: registerRequest.Password,
			Role:     registerRequest.Role,
			Phone:    registerRequest.Phone,
			Address:  registerRequest.Address,
		})
		if !ok {
			log.Error("registration rejected", slog.String("email", registerRequest.Email))
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("could not register user"))
			return
		}

		user := sess.Current()
		log.Info("user registered", slog.String("user_id", user.ID))
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"token": user.AccessToken,
			"user":  user,
		}))
	}
}
