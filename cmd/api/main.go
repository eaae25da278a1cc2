// Package main is the entry point for the Personal Ledger API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/personal-ledger/backend/config"
	"github.com/personal-ledger/backend/internal/infra/cache"
	"github.com/personal-ledger/backend/internal/infra/db"
	"github.com/personal-ledger/backend/internal/infra/dependency"
	"github.com/personal-ledger/backend/internal/integration/email"
	"github.com/personal-ledger/backend/internal/integration/email/templates"
	"github.com/personal-ledger/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Server.LogLevel,
	})))

	slog.Info("Starting Personal Ledger API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"database_driver", cfg.Database.Driver,
	)

	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(model.All()...); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully", "driver", database.Driver())

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			slog.Warn("Redis unavailable, falling back to in-process ingest locking", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	injector := dependency.NewInjector(cfg, database.DB(), redisClient, nil)
	engine := injector.Router.Setup(cfg.Server.Environment)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	startEmailWorker(workerCtx, cfg, injector)
	go runHousekeeping(workerCtx, injector)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}

// startEmailWorker drains the email queue in the background. Without a Resend
// key, jobs stay queued until a worker with credentials picks them up.
func startEmailWorker(ctx context.Context, cfg *config.Config, injector *dependency.Injector) {
	if !cfg.Email.WorkerEnabled {
		slog.Info("Email worker disabled")
		return
	}
	if cfg.Email.ResendAPIKey == "" {
		slog.Warn("RESEND_API_KEY not set, email worker not started")
		return
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		slog.Error("Failed to load email templates", "error", err)
		return
	}

	sender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	if cfg.Email.ResendBaseURL != "" {
		sender, err = email.NewResendClientWithBaseURL(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail, cfg.Email.ResendBaseURL)
		if err != nil {
			slog.Error("Failed to configure email sender", "error", err)
			return
		}
	}
	worker := email.NewWorker(injector.EmailQueue, sender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})
	go worker.Start(ctx)
}

// runHousekeeping purges stale tokens, old email jobs and idle rate windows hourly.
func runHousekeeping(ctx context.Context, injector *dependency.Injector) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := injector.Housekeep(ctx); err != nil {
				slog.Error("Housekeeping failed", "error", err)
			}
		}
	}
}
