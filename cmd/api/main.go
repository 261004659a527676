package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Lelo88/backoffice-api-golang/internal/accounts"
	"github.com/Lelo88/backoffice-api-golang/internal/config"
	"github.com/Lelo88/backoffice-api-golang/internal/dashboard"
	"github.com/Lelo88/backoffice-api-golang/internal/db"
	"github.com/Lelo88/backoffice-api-golang/internal/docs"
	"github.com/Lelo88/backoffice-api-golang/internal/health"
	"github.com/Lelo88/backoffice-api-golang/internal/httpx"
	"github.com/Lelo88/backoffice-api-golang/internal/inventory"
	"github.com/Lelo88/backoffice-api-golang/internal/logging"
	"github.com/Lelo88/backoffice-api-golang/internal/session"
	"github.com/Lelo88/backoffice-api-golang/internal/suppliers"
)

const requestTimeout = 10 * time.Second

// appPool es lo que la app usa de pgxpool.Pool.
type appPool interface {
	Ping(ctx context.Context) error
	Close()
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// appRedis es el cliente de Redis donde viven las sesiones revocadas.
type appRedis interface {
	redis.Cmdable
	Close() error
}

// appDeps permite reemplazar infraestructura en tests.
type appDeps struct {
	loadConfig     func() (config.Config, error)
	newLogger      func(cfg logging.Config) (*zap.Logger, error)
	newPool        func(ctx context.Context, url string) (appPool, error)
	newRedis       func(ctx context.Context, addr, password string) (appRedis, error)
	listenAndServe func(addr string, handler http.Handler) error
}

var (
	loadConfigFn = config.Load
	newLoggerFn  = logging.New
	newPoolFn    = func(ctx context.Context, url string) (appPool, error) {
		return db.NewPool(ctx, url)
	}
	newRedisFn = func(ctx context.Context, addr, password string) (appRedis, error) {
		return db.NewRedis(ctx, addr, password)
	}
	listenAndServeFn = http.ListenAndServe
	fatalf           = log.Fatal
)

func main() {
	deps := appDeps{
		loadConfig:     loadConfigFn,
		newLogger:      newLoggerFn,
		newPool:        newPoolFn,
		newRedis:       newRedisFn,
		listenAndServe: listenAndServeFn,
	}

	// Contexto raíz del proceso.
	if err := run(context.Background(), deps); err != nil {
		fatalf(err)
	}
}

func run(ctx context.Context, deps appDeps) error {
	cfg, err := deps.loadConfig()
	if err != nil {
		return err
	}

	logger, err := deps.newLogger(logging.Config{Level: cfg.LogLevel, Development: cfg.Development})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	pool, err := deps.newPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	sessionStore, err := deps.newRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() { _ = sessionStore.Close() }()

	router := buildRouter(cfg, logger, pool, sessionStore)

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr))
	return deps.listenAndServe(addr, router)
}

func buildRouter(cfg config.Config, logger *zap.Logger, pool appPool, sessionStore appRedis) chi.Router {
	tokens := session.NewManager(cfg.JWTSecret, cfg.SessionTTL)
	denylist := session.NewRedisDenylist(sessionStore)
	authenticator := session.NewAuthenticator(tokens, denylist, logger)

	r := chi.NewRouter()

	// Middlewares base para trazabilidad y estabilidad.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httpx.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           600,
	}))

	// Errores de routing se manejan a nivel router.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, r, http.StatusNotFound, "not_found", "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	healthHandler := health.New(pool, health.PingFunc(func(ctx context.Context) error {
		return sessionStore.Ping(ctx).Err()
	}), logger)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	docs.RegisterRoutes(r)

	accountService := accounts.NewService(accounts.NewRepository(pool), tokens, denylist, logger)
	accounts.RegisterRoutes(r, accounts.NewHandler(accountService, authenticator), authenticator)

	inventoryService := inventory.NewService(inventory.NewRepository(pool))
	inventory.RegisterRoutes(r, inventory.NewHandler(inventoryService), authenticator.Require)

	supplierService := suppliers.NewService(suppliers.NewRepository(pool), logger)
	suppliers.RegisterRoutes(r, suppliers.NewHandler(supplierService), authenticator.Require)

	dashboard.RegisterRoutes(r, dashboard.NewHandler(inventoryService, logger), authenticator)

	return r
}
