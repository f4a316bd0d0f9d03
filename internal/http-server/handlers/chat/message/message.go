// Package message handles POST /chat/messages: appends the visitor's
// message to a conversation and returns the canned reply.
package message

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/childhope-org/childhope-backend/internal/http-server/response"
	"github.com/childhope-org/childhope-backend/internal/lib/sl"
	"github.com/childhope-org/childhope-backend/internal/services/responder"
)

type MessageRequest struct {
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message" validate:"required,max=2000"`
}

func New(log *slog.Logger, conversations *responder.Conversations) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.chat.message.New"
		var messageRequest MessageRequest

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if err := render.DecodeJSON(r.Body, &messageRequest); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(messageRequest); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		conv, id := conversations.Get(messageRequest.ConversationID)
		reply := conv.Ask(messageRequest.Message)

		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"conversation_id": id,
			"reply":           reply,
		}))
	}
}
