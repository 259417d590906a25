package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bakery-be/internal/auth"
	"bakery-be/internal/category"
	"bakery-be/internal/config"
	"bakery-be/internal/db"
	"bakery-be/internal/handler"
	"bakery-be/internal/logger"
	"bakery-be/internal/metrics"
	"bakery-be/internal/middleware"
	"bakery-be/internal/order"
	"bakery-be/internal/product"
	"bakery-be/internal/transport"
	"bakery-be/internal/user"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	healthTimeout   = 2 * time.Second
	limiterSweep    = time.Minute
	shutdownTimeout = 10 * time.Second
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = listenAndServe
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter := middleware.NewRateLimiter(cfg.InternalSecretKey)
	go limiter.Cleanup(ctx, limiterSweep)

	router := newServer(cfg, database, limiter)

	addr := ":" + cfg.AppPort
	logger.L().Info("🚀 server running", zap.String("addr", addr), zap.String("env", cfg.AppEnv))

	return startServerFunc(ctx, addr, router)
}

func newServer(cfg *config.Config, database *sql.DB, limiter *middleware.RateLimiter) http.Handler {
	m := metrics.New()
	issuer := auth.NewIssuer(cfg.JWTSecret)

	categoryRepo := category.NewRepository(database)
	productRepo := product.NewRepository(database)

	h := &handler.Handler{
		CategorySvc:  category.NewService(categoryRepo),
		ProductSvc:   product.NewService(productRepo, categoryRepo),
		OrderSvc:     order.NewService(order.NewRepository(database), m),
		UserSvc:      user.NewService(user.NewRepository(database), issuer),
		SecureCookie: cfg.AppEnv == "production",
	}

	return middleware.Chain(
		setupRouter(h, database),
		logger.RequestIDMiddleware,
		middleware.LoggingMiddleware(m),
		middleware.CORS(cfg.CORSOrigin),
		middleware.AuthMiddleware(issuer),
		limiter.Middleware,
	)
}

func setupRouter(h *handler.Handler, database *sql.DB) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := database.PingContext(ctx); err != nil {
			logger.FromCtx(r.Context()).Error("health check failed", zap.Error(err))
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	transport.Mount(mux, h.Routes())

	return mux
}

// listenAndServe serves until ctx is cancelled, then drains in-flight requests.
func listenAndServe(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.L().Info("shutting down server")
	return srv.Shutdown(shutdownCtx)
}
