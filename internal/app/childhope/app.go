// Package childhope assembles the backend: storage, session store,
// services, HTTP server and the maintenance scheduler.
package childhope

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/childhope-org/childhope-backend/internal/cache"
	"github.com/childhope-org/childhope-backend/internal/config"
	"github.com/childhope-org/childhope-backend/internal/email"
	"github.com/childhope-org/childhope-backend/internal/lib/jwt"
	"github.com/childhope-org/childhope-backend/internal/lib/sl"
	"github.com/childhope-org/childhope-backend/internal/migrations"
	"github.com/childhope-org/childhope-backend/internal/notify"
	"github.com/childhope-org/childhope-backend/internal/paymentprovider"
	"github.com/childhope-org/childhope-backend/internal/scheduler"
	adminservice "github.com/childhope-org/childhope-backend/internal/services/admin"
	authservice "github.com/childhope-org/childhope-backend/internal/services/auth"
	checkoutservice "github.com/childhope-org/childhope-backend/internal/services/checkout"
	paymentservice "github.com/childhope-org/childhope-backend/internal/services/payment"
	"github.com/childhope-org/childhope-backend/internal/services/responder"
	subscriptionservice "github.com/childhope-org/childhope-backend/internal/services/subscription"
	volunteerservice "github.com/childhope-org/childhope-backend/internal/services/volunteer"
	"github.com/childhope-org/childhope-backend/internal/session"
	"github.com/childhope-org/childhope-backend/internal/storage/repository"
)

type App struct {
	server    *http.Server
	logger    *slog.Logger
	db        *repository.Storage
	scheduler *scheduler.Scheduler
	amqpConn  *amqp.Connection
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	sessionStore := session.NewCacheStore(cacheRedis, cfg.RedisConnection.SessionTTL)
	sessions := session.NewManager(sessionStore)

	jwtMaker := jwt.NewMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)

	var provider authservice.Provider
	switch cfg.AuthProvider {
	case "mock":
		provider = authservice.NewMockProvider()
	default:
		provider = authservice.NewHostedProvider(db)
	}

	subscriptionService := subscriptionservice.NewService(db, logger)
	facades := authservice.NewFactory(provider, jwtMaker, subscriptionService, cfg.SnapshotTimeout, logger)

	providerClient := paymentprovider.NewClient(cfg.Payment.CheckoutURL, cfg.Payment.RequestTimeout)
	dispatcher := checkoutservice.NewDispatcher(providerClient, cfg.SiteURL, logger)

	sender := email.NewSender(cfg.Email.ResendAPIKey, cfg.Email.From)

	var amqpConn *amqp.Connection
	var publisher *notify.Publisher
	if cfg.RabbitMQ.URL != "" {
		amqpConn, err = notify.Connect(cfg.RabbitMQ.URL, 3, time.Second)
		if err != nil {
			return nil, fmt.Errorf("rabbitmq unavailable: %w", err)
		}
		ch, err := notify.SetupChannel(amqpConn, notify.DonationQueues())
		if err != nil {
			return nil, err
		}
		publisher = notify.NewPublisher(ch)
	}

	paymentService := paymentservice.New(db, publisher, sender, logger)
	volunteerService := volunteerservice.New(db, sender, logger)
	adminService := adminservice.New(db)
	conversations := responder.NewConversations()

	expiry, err := scheduler.New(cfg.Scheduler.ExpirySpec, db, logger)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Deps{
		Facades:       facades,
		Sessions:      sessions,
		JWTMaker:      jwtMaker,
		Dispatcher:    dispatcher,
		Payments:      paymentService,
		Volunteers:    volunteerService,
		Admin:         adminService,
		Conversations: conversations,
		DB:            db,
		WebhookSecret: cfg.Payment.WebhookSecret,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.TimeoutHTTP,
		WriteTimeout: cfg.HTTPServer.TimeoutHTTP,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server:    srv,
		logger:    logger,
		db:        db,
		scheduler: expiry,
		amqpConn:  amqpConn,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.scheduler.Start()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.scheduler.Stop()
		if a.amqpConn != nil {
			if cerr := a.amqpConn.Close(); cerr != nil {
				a.logger.Error("failed to close rabbitmq connection", sl.Err(cerr))
			}
		}
		if cerr := a.db.Close(); cerr != nil {
			a.logger.Error("failed to close database", sl.Err(cerr))
		}
		return err
	}
}
