package register_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/childhope-org/childhope-backend/internal/http-server/handlers/auth/register"
	"github.com/childhope-org/childhope-backend/internal/http-server/response"
	"github.com/childhope-org/childhope-backend/internal/models"
	"github.com/childhope-org/childhope-backend/internal/services/auth"
	"github.com/childhope-org/childhope-backend/internal/services/subscription"
	"github.com/childhope-org/childhope-backend/internal/session"
)

type staticMinter struct{}

func (staticMinter) GenerateToken(string, string, string) (string, error) {
	return "jwt-token-123", nil
}

type emptyFetcher struct{}

func (emptyFetcher) FetchWithDeadline(context.Context, string, time.Duration) subscription.FetchResult {
	return subscription.FetchResult{Outcome: subscription.OutcomeOK}
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

func newFactory() (*auth.Factory, *session.Manager) {
	provider := auth.NewMockProvider()
	factory := auth.NewFactory(provider, staticMinter{}, emptyFetcher{}, time.Second, makeLogger())
	return factory, session.NewManager(session.NewMemoryStore())
}

func TestRegisterHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		factory, sessions := newFactory()
		body, _ := json.Marshal(register.RegisterRequest{
			Email:    "ana@example.com",
			Name:     "Ana Silva",
			Password: "secret1",
			Role:     models.RoleVolunteer,
		})

		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
		w := httptest.NewRecorder()

		register.New(makeLogger(), factory, sessions).ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp response.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, response.StatusOK, resp.Status)

		data := resp.Data.(map[string]any)
		assert.Equal(t, "jwt-token-123", data["token"])
		user := data["user"].(map[string]any)
		assert.Equal(t, "Ana Silva", user["name"])
		assert.Equal(t, models.RoleVolunteer, user["role"])
		assert.Equal(t, float64(0), user["donations"])
	})

	t.Run("duplicate email", func(t *testing.T) {
		factory, sessions := newFactory()
		body, _ := json.Marshal(register.RegisterRequest{
			Email: "dup@example.com", Name: "Dup", Password: "secret1", Role: models.RoleDonor,
		})

		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
		w := httptest.NewRecorder()
		register.New(makeLogger(), factory, sessions).ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		req = httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
		w = httptest.NewRecorder()
		register.New(makeLogger(), factory, sessions).ServeHTTP(w, req)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("admin role rejected", func(t *testing.T) {
		factory, sessions := newFactory()
		body, _ := json.Marshal(register.RegisterRequest{
			Email: "x@example.com", Name: "X", Password: "secret1", Role: models.RoleAdmin,
		})

		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
		w := httptest.NewRecorder()

		register.New(makeLogger(), factory, sessions).ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("short password", func(t *testing.T) {
		factory, sessions := newFactory()
		body, _ := json.Marshal(register.RegisterRequest{
			Email: "x@example.com", Name: "X", Password: "abc", Role: models.RoleDonor,
		})

		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
		w := httptest.NewRecorder()

		register.New(makeLogger(), factory, sessions).ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
