package apply_test

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

	"github.com/childhope-org/childhope-backend/internal/http-server/handlers/volunteer/apply"
	"github.com/childhope-org/childhope-backend/internal/http-server/response"
	"github.com/childhope-org/childhope-backend/internal/models"
)

type spySubmitter struct {
	apps []models.VolunteerApplication
	err  error
}

func (s *spySubmitter) Submit(_ context.Context, app models.VolunteerApplication) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.apps = append(s.apps, app)
	return "app-1", nil
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

func validRequest() apply.ApplyRequest {
	return apply.ApplyRequest{
		FirstName:     "Ana",
		LastName:      "Silva",
		Email:         "ana@example.com",
		Skills:        []string{"teaching", "first aid"},
		Languages:     []string{"english", "portuguese"},
		Availability:  "weekends",
		TermsAccepted: true,
	}
}

func TestApplyHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		service := &spySubmitter{}
		handler := apply.New(makeLogger(), service)

		body, _ := json.Marshal(validRequest())
		req := httptest.NewRequest(http.MethodPost, "/volunteer/applications", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		var resp response.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "app-1", resp.Data.(map[string]any)["application_id"])

		require.Len(t, service.apps, 1)
		assert.Equal(t, []string{"teaching", "first aid"}, service.apps[0].Skills)
	})

	t.Run("terms not accepted", func(t *testing.T) {
		service := &spySubmitter{}
		handler := apply.New(makeLogger(), service)

		payload := validRequest()
		payload.TermsAccepted = false
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, "/volunteer/applications", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Empty(t, service.apps)
	})

	t.Run("missing required fields", func(t *testing.T) {
		service := &spySubmitter{}
		handler := apply.New(makeLogger(), service)

		payload := validRequest()
		payload.Email = ""
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, "/volunteer/applications", bytes.NewReader(body))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
