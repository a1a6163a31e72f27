// Package main is the entry point for the dynamic allocation engine. The
// service exposes regime-aware portfolio optimization over HTTP: an
// ensemble of four optimizers blended, tilted by market regime and
// projected onto the configured constraints.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/portfolioai/allocator/internal/config"
	"github.com/portfolioai/allocator/internal/modules/allocation"
	"github.com/portfolioai/allocator/internal/server"
	"github.com/portfolioai/allocator/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().
		Int("port", cfg.Port).
		Float64("target_volatility", cfg.Risk.TargetVolatility).
		Float64("max_weight", cfg.Constraints.MaxWeight).
		Float64("max_turnover", cfg.Constraints.MaxTurnover).
		Msg("Starting allocation engine")

	service := allocation.NewService(cfg, log)
	srv := server.New(cfg, service, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("Server failed")
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Allocation engine stopped")
}
