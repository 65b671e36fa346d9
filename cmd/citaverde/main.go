package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"citaverde/internal/config"
	"citaverde/internal/httpapi"
	"citaverde/internal/store/postgres"
	"citaverde/internal/telemetry"
	"citaverde/internal/worker"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	cfg := config.Load()

	shutdownTracing := telemetry.Setup("citaverde")
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(ctx)
	}()

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	st := postgres.NewStore(pool)
	handler := httpapi.NewHandler(st)
	limiter := httpapi.NewRateLimiter(httpapi.RateLimitConfig{
		IPPerMinute:   cfg.RateLimitPerMinute,
		IPBurst:       cfg.RateLimitBurst,
		SedePerMinute: cfg.SedeRateLimitPerMinute,
		SedeBurst:     cfg.SedeRateLimitBurst,
	})
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders: []string{"Content-Type", "X-Sede-ID"},
	})

	chain := corsMiddleware.Handler(httpapi.LoggingMiddleware(limiter.Middleware(handler.Routes())))
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      otelhttp.NewHandler(chain, "citaverde"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	if cfg.NotifInterval > 0 {
		notifier := worker.New(st, worker.Config{
			BatchSize:     cfg.NotifBatchSize,
			MaxAttempts:   cfg.NotifMaxAttempts,
			EmailProvider: cfg.NotifEmailProvider,
			PushProvider:  cfg.NotifPushProvider,
		})
		go worker.Start(workerCtx, cfg.NotifInterval, notifier)
	}

	go func() {
		log.Printf("citaverde listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	stopWorker()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
