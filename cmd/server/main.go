package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhandler "fundready/internal/auth/handler"
	authservice "fundready/internal/auth/service"
	authstore "fundready/internal/auth/store"
	bizhandler "fundready/internal/business/handler"
	bizservice "fundready/internal/business/service"
	bizstore "fundready/internal/business/store"
	"fundready/internal/completion"
	dirhandler "fundready/internal/director/handler"
	dirservice "fundready/internal/director/service"
	dirstore "fundready/internal/director/store"
	dochandler "fundready/internal/document/handler"
	docservice "fundready/internal/document/service"
	docstore "fundready/internal/document/store"
	fundhandler "fundready/internal/funding/handler"
	fundservice "fundready/internal/funding/service"
	fundstore "fundready/internal/funding/store"
	"fundready/internal/platform/config"
	"fundready/internal/platform/httpserver"
	"fundready/internal/platform/logger"
	"fundready/internal/platform/metrics"
	"fundready/internal/platform/middleware"
	"fundready/internal/platform/postgres"
	"fundready/internal/platform/redis"
	"fundready/pkg/platform/tx"
)

// main wires stores, services, and the HTTP router, then runs the server
// until SIGINT/SIGTERM. Business logic lives in the internal packages.
func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to postgres", "error", err.Error())
		os.Exit(1)
	}

	var (
		users      authservice.UserStore
		businesses bizstore.Store
		documents  docstore.Store
		directors  dirstore.Store
		utilities  fundstore.Store
		txRunner   tx.Runner
	)
	if db != nil {
		defer db.Close()
		users = authstore.NewPostgresUserStore(db)
		businesses = bizstore.NewPostgres(db)
		documents = docstore.NewPostgres(db)
		directors = dirstore.NewPostgres(db)
		utilities = fundstore.NewPostgres(db)
		txRunner = tx.NewSQLRunner(db)
		log.Info("using postgres stores")
	} else {
		users = authstore.NewInMemoryUserStore()
		businesses = bizstore.NewInMemory()
		documents = docstore.NewInMemory()
		directors = dirstore.NewInMemory()
		utilities = fundstore.NewInMemory()
		txRunner = tx.NoopRunner{}
		log.Warn("no DATABASE_URL configured, using in-memory stores")
	}

	var otps authservice.OTPStore
	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err.Error())
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		otps = authstore.NewRedisOTPStore(redisClient.Client)
		log.Info("using redis otp store")
	} else {
		otps = authstore.NewInMemoryOTPStore()
		log.Warn("no REDIS_URL configured, using in-memory otp store")
	}

	issuer := authservice.NewTokenIssuer(cfg.JWTSigningKey, cfg.JWTTTL)

	completionSvc := completion.NewService(businesses, documents, directors, log, m)
	authSvc := authservice.NewService(users, otps, issuer, cfg.OTP, log, m)
	bizSvc := bizservice.NewService(businesses, documents, completionSvc, txRunner, log, m)
	dirSvc := dirservice.NewService(directors, businesses, completionSvc, log)
	docSvc := docservice.NewService(documents, businesses, completionSvc, log, m)
	fundSvc := fundservice.NewService(utilities, businesses, completionSvc, log, m)

	router := chi.NewRouter()
	router.Use(
		middleware.Recovery(log),
		middleware.RequestID,
		middleware.Logger(log),
		middleware.Timeout(30*time.Second),
		middleware.Latency(m),
	)

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.New(authSvc, log).Register(r)
		bizhandler.New(bizSvc, log, issuer).Register(r)
		dirhandler.New(dirSvc, log, issuer).Register(r)
		dochandler.New(docSvc, log, issuer).Register(r)
		fundhandler.New(fundSvc, log, issuer).Register(r)
	})

	router.Get("/health", healthHandler(db, redisClient))
	router.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
}

// healthHandler reports liveness plus dependency health. Nil dependencies
// are skipped so the in-memory configuration still reports healthy.
func healthHandler(db *sql.DB, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		body := `{"status":"ok"}`

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				status = http.StatusServiceUnavailable
				body = `{"status":"degraded","postgres":"unreachable"}`
			}
		}
		if redisClient != nil && status == http.StatusOK {
			if err := redisClient.Health(ctx); err != nil {
				status = http.StatusServiceUnavailable
				body = `{"status":"degraded","redis":"unreachable"}`
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}
