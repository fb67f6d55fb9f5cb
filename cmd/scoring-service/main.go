// cmd/scoring-service/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"swot-engine/internal/common/config"
	"swot-engine/internal/common/database"
	"swot-engine/internal/common/logger"
	"swot-engine/internal/common/observability"
	"swot-engine/internal/judge"
)

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting scoring service...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("scoring-service")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Assemble the judge chain ---
	var criterionJudge judge.Judge = judge.NewGenAIJudge(cfg.Judge, log)

	if cfg.Judge.CacheTTL > 0 && cfg.Database.Redis.Address != "" {
		redisClient, err := database.NewRedis(cfg.Database.Redis)
		if err == nil {
			err = redisClient.Ping(ctx)
		}
		if err != nil {
			zapLog.Warn("Redis unavailable, judging without cache", zap.Error(err))
		} else {
			defer redisClient.Close()
			criterionJudge = judge.NewCachedJudge(
				criterionJudge,
				redisClient,
				time.Duration(cfg.Judge.CacheTTL)*time.Millisecond,
				log,
			)
			zapLog.Info("Judgment cache enabled", zap.String("redis", cfg.Database.Redis.Address))
		}
	}

	service := judge.NewService(criterionJudge, log)
	handler := judge.NewHandler(service, log)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Post("/api/score", func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		handler.Score(w, r)
		obs.RecordAttempt(r.Context(), "served")
		obs.RecordDuration(r.Context(), time.Since(started))
	})

	server := &http.Server{
		Addr:    cfg.Server.ScoringAPIAddress,
		Handler: router,
	}

	go func() {
		zapLog.Info("Scoring API listening", zap.String("address", cfg.Server.ScoringAPIAddress))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	zapLog.Info("Shutting down scoring service...")
	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Server.ShutdownTimeout)*time.Millisecond)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("Scoring service stopped")
}
