package bootstrap

import (
	"fmt"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/sitewatch/sitewatch-backend/internal/application/auth"
	"github.com/sitewatch/sitewatch-backend/internal/application/dashboard"
	"github.com/sitewatch/sitewatch-backend/internal/application/facility"
	"github.com/sitewatch/sitewatch-backend/internal/application/messaging"
	"github.com/sitewatch/sitewatch-backend/internal/config"
	"github.com/sitewatch/sitewatch-backend/internal/infrastructure/db/postgres"
	"github.com/sitewatch/sitewatch-backend/internal/infrastructure/memory"
	"github.com/sitewatch/sitewatch-backend/internal/infrastructure/messaging/rabbitmq"
	appredis "github.com/sitewatch/sitewatch-backend/internal/infrastructure/redis"
	"github.com/sitewatch/sitewatch-backend/internal/infrastructure/security"
	"github.com/sitewatch/sitewatch-backend/internal/logger"
	"github.com/sitewatch/sitewatch-backend/internal/metrics"
	"github.com/sitewatch/sitewatch-backend/internal/transport/http/handlers"
	"github.com/sitewatch/sitewatch-backend/internal/transport/http/middleware"
	"github.com/sitewatch/sitewatch-backend/internal/transport/http/response"
	"github.com/sitewatch/sitewatch-backend/internal/transport/http/router"
)

// Per-route fixed-window budgets.
const (
	loginLimit  = 10
	forgotLimit = 5
	limitWindow = time.Minute
)

// App carries the wired server and the teardown for everything it
// opened.
type App struct {
	Server  *http.Server
	Cleanup func()
}

// New wires the full dependency graph. Postgres is mandatory; redis
// and rabbitmq degrade to in-memory stand-ins outside prod so local
// development does not need the full stack.
func New(cfg *config.Config) (*App, error) {
	cleanups := []func(){}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	// --- postgres (required) ---
	db, err := config.NewDB(cfg.DBAddr, cfg.DBDebug)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	cleanups = append(cleanups, func() { _ = db.Close() })
	metrics.SetDependencyHealth("postgres", true)

	// --- redis (optional) ---
	var redisClient *goredis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = appredis.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			if cfg.Env == "prod" {
				cleanup()
				return nil, fmt.Errorf("redis: %w", err)
			}
			logger.Logger.Warn().Err(err).Msg("redis unavailable, falling back to in-memory stores")
			redisClient = nil
		}
	}
	if redisClient != nil {
		cleanups = append(cleanups, func() { _ = redisClient.Close() })
	}
	metrics.SetDependencyHealth("redis", redisClient != nil)

	var resets auth.ResetCodeStore
	if redisClient != nil {
		resets = appredis.NewResetCodeStore(redisClient)
	} else {
		resets = memory.NewResetCodeStore()
	}

	// --- rabbitmq (optional outside prod) ---
	var pub auth.EventPublisher
	if cfg.RabbitURL != "" {
		rp, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			if cfg.Env == "prod" {
				cleanup()
				return nil, fmt.Errorf("rabbitmq: %w", err)
			}
			logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable, events will be logged and dropped")
			pub = memory.NewNoopPublisher()
		} else {
			pub = rp
			cleanups = append(cleanups, func() { _ = rp.Close() })
		}
	} else {
		pub = memory.NewNoopPublisher()
	}
	metrics.SetDependencyHealth("rabbitmq", cfg.RabbitURL != "")

	// --- security ---
	hasher := security.NewPBKDF2Hasher()
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)

	// --- services ---
	userRepo := postgres.NewUserRepo(db)
	authSvc := auth.NewService(userRepo, hasher, signer, resets, pub, auth.Config{
		AccessTTL:    cfg.AccessTokenTTL,
		ResetCodeTTL: cfg.ResetCodeTTL,
	}).WithAudit(func(action string, fields map[string]string) {
		evt := logger.Logger.Info()
		for k, v := range fields {
			evt = evt.Str(k, v)
		}
		evt.Msg(action)
	})

	facilitySvc := facility.NewService(
		postgres.NewBuildingRepo(db),
		postgres.NewRoomRepo(db),
		postgres.NewCameraRepo(db),
	)
	messagingSvc := messaging.NewService(
		postgres.NewContactRepo(db),
		postgres.NewMessageRepo(db),
		postgres.NewNotificationRepo(db),
	)
	dashboardSvc := dashboard.NewService(postgres.NewStatsRepo(db))

	// --- transport ---
	authMW := middleware.Auth(signer, authSvc, response.WriteError)
	adminMW := middleware.RequireAdmin(response.WriteError)

	var loginLimitMW, forgotLimitMW func(http.Handler) http.Handler
	if redisClient != nil {
		loginLimitMW = middleware.RateLimit(
			appredis.NewFixedWindowLimiter(redisClient, loginLimit, limitWindow),
			"login", response.WriteError,
		)
		forgotLimitMW = middleware.RateLimit(
			appredis.NewFixedWindowLimiter(redisClient, forgotLimit, limitWindow),
			"forgot", response.WriteError,
		)
	}

	handler, err := router.New(router.Deps{
		Health:    handlers.NewHealthHandler(db),
		Auth:      handlers.NewAuthHandler(authSvc),
		Facility:  handlers.NewFacilityHandler(facilitySvc),
		Messaging: handlers.NewMessagingHandler(messagingSvc),
		Dashboard: handlers.NewDashboardHandler(dashboardSvc),

		AuthMW:  authMW,
		AdminMW: adminMW,

		LoginLimitMW:  loginLimitMW,
		ForgotLimitMW: forgotLimitMW,
	})
	if err != nil {
		cleanup()
		return nil, err
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &App{Server: srv, Cleanup: cleanup}, nil
}
