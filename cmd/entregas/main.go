package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"

	"entregas/internal/auth"
	"entregas/internal/config"
	"entregas/internal/http/handlers"
	"entregas/internal/http/middleware"
	"entregas/internal/http/router"
	"entregas/internal/logx"
	"entregas/internal/metrics"
	"entregas/internal/repository"
	"entregas/internal/service/account"
	"entregas/internal/service/proof"
	"entregas/internal/storage"
	"entregas/internal/transport/kafka"
)

const operationTimeout = 3 * time.Second

func connectDbWithRetry(ctx context.Context, dsn string, retries int, delay time.Duration) (*pgxpool.Pool, error) {
	var lastErr error
	const attemptTimeout = 3 * time.Second
	for i := 1; i <= retries; i++ {
		attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout)
		pool, err := repository.NewPool(attemptCtx, dsn, attemptTimeout)
		cancel()
		if err == nil {
			log.Printf("db connected on attempt %d", i)
			return pool, nil
		}
		lastErr = err
		log.Printf("db connect failed (attempt %d/%d): %v", i, retries, err)
		if i < retries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return nil, fmt.Errorf("db connect failed after %d attempts: %w", retries, lastErr)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	logger := logx.NewSlogAdapter(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctxSignals, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := connectDbWithRetry(ctxSignals, cfg.DB.DSN(), 10, time.Second)
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	defer pool.Close()

	photos, err := storage.NewLocalStore(cfg.Uploads.Dir)
	if err != nil {
		log.Fatalf("photo store error: %v", err)
	}

	producer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if err != nil {
		log.Fatalf("kafka producer error: %v", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}()

	uploadsTotal := metrics.NewDeliveriesUploadedTotal()
	transitionsTotal := metrics.NewDeliveryTransitionsTotal()
	prometheus.MustRegister(uploadsTotal, transitionsTotal)

	tokens := auth.NewTokenService(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	userRepo := repository.NewUserRepo(pool)
	deliveryRepo := repository.NewDeliveryRepo(pool)

	accounts := account.NewService(userRepo, tokens, operationTimeout, logger)
	lifecycle := proof.NewService(deliveryRepo, photos, producer, proof.Metrics{
		Uploads:     uploadsTotal,
		Transitions: transitionsTotal,
	}, operationTimeout, logger)

	mux := router.New(router.Deps{
		Base:         handlers.New(logger),
		Auth:         handlers.NewAuthHandler(logger, handlers.NewAccountUsecase(accounts)),
		Couriers:     handlers.NewCourierHandler(logger, handlers.NewAccountUsecase(accounts)),
		Deliveries:   handlers.NewDeliveryHandler(logger, handlers.NewProofUsecase(lifecycle)),
		Authenticate: middleware.Authenticate(logger, tokens, accounts),
		Observe:      middleware.Observability(logger),
		UploadsDir:   photos.Dir(),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	defer func() {
		if err := srv.Close(); err != nil {
			log.Printf("server close error: %v", err)
		}
	}()

	go func() {
		log.Printf("entregas listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()

	<-ctxSignals.Done()
	log.Println("shutting down entregas")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}
