// Package start handles POST /checkout: validates the caller and the
// product, then asks the payment provider for a hosted checkout URL.
package start

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/childhope-org/childhope-backend/internal/http-server/middlewarectx"
	"github.com/childhope-org/childhope-backend/internal/http-server/response"
	"github.com/childhope-org/childhope-backend/internal/lib/sl"
	"github.com/childhope-org/childhope-backend/internal/services/checkout"
)

type StartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

func New(log *slog.Logger, dispatcher *checkout.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.checkout.start.New"
		var startRequest StartRequest

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if err := render.DecodeJSON(r.Body, &startRequest); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(startRequest); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		user, _ := middlewarectx.UserFromContext(r.Context())

		url, err := dispatcher.StartCheckout(r.Context(), startRequest.ProductID, user)
		if err != nil {
			switch {
			case errors.Is(err, checkout.ErrAuthenticationRequired):
				log.Error("checkout without authentication")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
			case errors.Is(err, checkout.ErrUnknownProduct):
				log.Error("unknown product", slog.String("product_id", startRequest.ProductID))
				render.Status(r, http.StatusUnprocessableEntity)
				render.JSON(w, r, response.Error("unknown product"))
			default:
				log.Error("checkout session creation failed", sl.Err(err))
				render.Status(r, http.StatusBadGateway)
				render.JSON(w, r, response.Error("payment provider unavailable"))
			}
			return
		}

		log.Info("checkout session created", slog.String("product_id", startRequest.ProductID))
		render.JSON(w, r, response.StatusOKWithData(map[string]string{
			"url": url,
		}))
	}
}
