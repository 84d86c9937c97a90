// cmd/server/main.go
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

	"github.com/francedirectjp-art/astro-medical-system/internal/astro/chart"
	"github.com/francedirectjp-art/astro-medical-system/internal/astro/ephemeris"
	"github.com/francedirectjp-art/astro-medical-system/internal/common/config"
	"github.com/francedirectjp-art/astro-medical-system/internal/common/database"
	"github.com/francedirectjp-art/astro-medical-system/internal/common/logger"
	"github.com/francedirectjp-art/astro-medical-system/internal/common/observability"
	"github.com/francedirectjp-art/astro-medical-system/internal/diagnosis"
	"github.com/francedirectjp-art/astro-medical-system/internal/report"
	"github.com/francedirectjp-art/astro-medical-system/internal/server"
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
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting diagnosis API server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("addr", cfg.Server.Addr()),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Redis (optional) with retry ---
	var rdb *database.RedisClient
	if cfg.Redis.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Redis)
			if err != nil {
				return err
			}
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			// Redis backs caching and rate-limit counters, not the pipeline.
			zapLog.Warn("redis unavailable, continuing without cache", zap.Error(err))
			rdb = nil
		} else {
			zapLog.Info("Redis connected successfully")
		}
	}

	// --- Build the diagnosis pipeline ---
	calculator := chart.NewCalculator(ephemeris.NewAnalytic())
	policy := chart.PolicyByName(cfg.Reports.WeightPolicy)

	generator := report.NewGeminiClient(report.GeminiConfig{
		BaseURL:         cfg.GenAI.BaseURL,
		APIKey:          cfg.GenAI.APIKey,
		Model:           cfg.GenAI.Model,
		Timeout:         time.Duration(cfg.GenAI.Timeout) * time.Millisecond,
		MaxOutputTokens: cfg.GenAI.MaxOutputTokens,
		Temperature:     cfg.GenAI.Temperature,
	}, log)

	assembler := report.NewAssembler(generator, report.AssemblerConfig{
		Timeout:             time.Duration(cfg.GenAI.Timeout) * time.Millisecond,
		ShortTargetChars:    cfg.Reports.ShortTargetChars,
		DetailedTargetChars: cfg.Reports.DetailedTargetChars,
		LengthTolerance:     cfg.Reports.LengthTolerance,
	}, log)

	var cache *report.Cache
	if rdb != nil {
		cache = report.NewCache(rdb, time.Duration(cfg.Redis.CacheTTL)*time.Second, log)
	}

	service := diagnosis.NewService(calculator, policy, assembler, cache, log)
	srv := server.New(cfg, service, rdb, obs, log)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      srv.Handler(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Millisecond,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zapLog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Server.ShutdownTimeout)*time.Millisecond)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("http shutdown failed", zap.Error(err))
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			zapLog.Error("redis close failed", zap.Error(err))
		}
	}

	zapLog.Info("Shutdown complete")
}
