// cmd/scenario-manager/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"swot-engine/internal/api"
	"swot-engine/internal/common/config"
	"swot-engine/internal/common/database"
	"swot-engine/internal/common/logger"
	"swot-engine/internal/common/observability"
	"swot-engine/internal/scoring"
	"swot-engine/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting scenario manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("scenario-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init scenario store ---
	var scenarioStore store.Store
	switch cfg.Store.Driver {
	case "postgres":
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		zapLog.Info("PostgreSQL connected successfully")

		pgStore := store.NewPostgresStore(pg.GetDB())
		if err := pgStore.EnsureSchema(ctx); err != nil {
			zapLog.Fatal("schema setup failed", zap.Error(err))
		}
		scenarioStore = pgStore
	default:
		scenarioStore = store.NewMemoryStore()
		zapLog.Info("Using in-memory scenario store")
	}

	orchestrator := scoring.NewOrchestrator(cfg.Scoring, log)

	handler := api.NewHandler(scenarioStore, orchestrator, log)
	router := api.NewRouter(handler, cfg.Server.AllowedOrigins)

	server := &http.Server{
		Addr:    cfg.Server.ScenarioAPIAddress,
		Handler: router,
	}

	go func() {
		zapLog.Info("Scenario API listening", zap.String("address", cfg.Server.ScenarioAPIAddress))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	zapLog.Info("Shutting down scenario manager...")
	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Server.ShutdownTimeout)*time.Millisecond)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("Scenario manager stopped")
}
