// Package middlewarectx carries the authenticated user and its session
// through the request context: the JWT middleware resolves the token to
// a server-side session and restores it before any handler runs.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/childhope-org/childhope-backend/internal/http-server/response"
	"github.com/childhope-org/childhope-backend/internal/lib/jwt"
	"github.com/childhope-org/childhope-backend/internal/lib/sl"
	"github.com/childhope-org/childhope-backend/internal/models"
	"github.com/childhope-org/childhope-backend/internal/session"
)

// Key is the context key type for request-scoped values.
type Key string

const (
	// UserKey holds the restored *models.User.
	UserKey Key = "user"
	// SessionKey holds the restored *session.Session.
	SessionKey Key = "session"
)

// JWTMiddleware validates the bearer token, resolves the session it
// names and restores it. Requests without a live authenticated session
// are rejected with 401.
func JWTMiddleware(jwtMaker jwt.Maker, sessions *session.Manager, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := jwtMaker.ParseToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			sess := sessions.Get(claims.SessionKey)
			if err := sess.Restore(r.Context()); err != nil {
				log.Error("failed to restore session", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("session unavailable"))
				return
			}

			user := sess.Current()
			if user == nil || user.ID != claims.UserID {
				log.Error("no live session for token")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("session expired"))
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			ctx = context.WithValue(ctx, SessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user placed by JWTMiddleware.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserKey).(*models.User)
	return user, ok
}

// SessionFromContext returns the restored session placed by JWTMiddleware.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(SessionKey).(*session.Session)
	return sess, ok
}
