package childhope

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	adminstats "github.com/childhope-org/childhope-backend/internal/http-server/handlers/admin/stats"
	"github.com/childhope-org/childhope-backend/internal/http-server/handlers/auth/login"
	"github.com/childhope-org/childhope-backend/internal/http-server/handlers/auth/logout"
	"github.com/childhope-org/childhope-backend/internal/http-server/handlers/auth/me"
	"github.com/childhope-org/childhope-backend/internal/http-server/handlers/auth/profile"
	"github.com/childhope-org/childhope-backend/internal/http-server/handlers/auth/register"
	"github.com/childhope-org/childhope-backend/internal/http-server/handlers/chat/message"
	"github.com/childhope-org/childhope-backend/internal/http-server/handlers/checkout/start"
	"github.com/childhope-org/childhope-backend/internal/http-server/handlers/checkout/success"
	"github.com/childhope-org/childhope-backend/internal/http-server/handlers/checkout/webhook"
	"github.com/childhope-org/childhope-backend/internal/http-server/handlers/health"
	subscriptionread "github.com/childhope-org/childhope-backend/internal/http-server/handlers/subscription/read"
	volunteerapply "github.com/childhope-org/childhope-backend/internal/http-server/handlers/volunteer/apply"
	"github.com/childhope-org/childhope-backend/internal/http-server/middlewarectx"
	"github.com/childhope-org/childhope-backend/internal/lib/jwt"
	adminservice "github.com/childhope-org/childhope-backend/internal/services/admin"
	authservice "github.com/childhope-org/childhope-backend/internal/services/auth"
	checkoutservice "github.com/childhope-org/childhope-backend/internal/services/checkout"
	paymentservice "github.com/childhope-org/childhope-backend/internal/services/payment"
	"github.com/childhope-org/childhope-backend/internal/services/responder"
	volunteerservice "github.com/childhope-org/childhope-backend/internal/services/volunteer"
	"github.com/childhope-org/childhope-backend/internal/session"
	"github.com/childhope-org/childhope-backend/internal/storage/repository"
	"github.com/childhope-org/childhope-backend/internal/models"
)

// Deps bundles everything the route tree needs.
type Deps struct {
	Facades       *authservice.Factory
	Sessions      *session.Manager
	JWTMaker      jwt.Maker
	Dispatcher    *checkoutservice.Dispatcher
	Payments      *paymentservice.Service
	Volunteers    *volunteerservice.Service
	Admin         *adminservice.Service
	Conversations *responder.Conversations
	DB            *repository.Storage
	WebhookSecret string
}

// RegisterRoutes wires all application routes.
func RegisterRoutes(r chi.Router, logger *slog.Logger, deps *Deps) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// open endpoints
		r.Post("/register", register.New(logger, deps.Facades, deps.Sessions))
		r.Post("/login", login.New(logger, deps.Facades, deps.Sessions))
		r.Post("/chat/messages", message.New(logger, deps.Conversations))
		r.Get("/checkout/success", success.New(logger))
		r.Get("/health", health.New(logger, deps.DB))

		// group with JWT authentication
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(deps.JWTMaker, deps.Sessions, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/logout", logout.New(logger, deps.Facades))
			r.Get("/me", me.New(logger))
			r.Patch("/profile", profile.New(logger, deps.Facades))
			r.Get("/subscription", subscriptionread.New(logger))
			r.Post("/checkout", start.New(logger, deps.Dispatcher))
			r.Post("/volunteer/applications", volunteerapply.New(logger, deps.Volunteers))

			// admin-only
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(models.RoleAdmin, logger))
				r.Get("/admin/stats", adminstats.New(logger, deps.Admin))
			})
		})

		// webhook endpoint (signature-authenticated)
		r.Post("/payments/webhook", webhook.New(logger, deps.Payments, deps.WebhookSecret).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
