package message_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/childhope-org/childhope-backend/internal/http-server/handlers/chat/message"
	"github.com/childhope-org/childhope-backend/internal/http-server/response"
	"github.com/childhope-org/childhope-backend/internal/services/responder"
)

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

func post(t *testing.T, handler http.HandlerFunc, payload message.MessageRequest) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/chat/messages", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestMessageHandler(t *testing.T) {
	t.Run("keyword reply", func(t *testing.T) {
		handler := message.New(makeLogger(), responder.NewConversations())

		w, resp := post(t, handler, message.MessageRequest{Message: "how can I donate?"})
		require.Equal(t, http.StatusOK, w.Code)

		data := resp.Data.(map[string]any)
		assert.NotEmpty(t, data["conversation_id"])
		reply := data["reply"].(map[string]any)
		assert.Equal(t, "bot", reply["sender"])
		assert.Contains(t, reply["content"], "donation")
	})

	t.Run("conversation continuity", func(t *testing.T) {
		conversations := responder.NewConversations()
		handler := message.New(makeLogger(), conversations)

		_, first := post(t, handler, message.MessageRequest{Message: "hello"})
		id := first.Data.(map[string]any)["conversation_id"].(string)

		_, second := post(t, handler, message.MessageRequest{
			ConversationID: id,
			Message:        "volunteer",
		})
		assert.Equal(t, id, second.Data.(map[string]any)["conversation_id"])

		conv, _ := conversations.Get(id)
		// greeting + 2 user turns + 2 bot turns
		assert.Len(t, conv.Messages(), 5)
	})

	t.Run("empty message rejected", func(t *testing.T) {
		handler := message.New(makeLogger(), responder.NewConversations())

		w, _ := post(t, handler, message.MessageRequest{Message: ""})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
