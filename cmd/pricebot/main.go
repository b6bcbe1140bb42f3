package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"pricebot/internal/bootstrap"
	"pricebot/internal/config"
	infraconfig "pricebot/internal/infrastructure/config"
	"pricebot/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	log := logx.L()
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := bootstrap.InitApp(ctx)
	if err != nil {
		if errors.Is(err, config.ErrConfigMissing) {
			log.Fatal("configuration incomplete", zap.Error(err))
		}
		log.Fatal("init app", zap.Error(err))
	}
	defer cleanup()

	cfg := app.Config
	log.Info("pricebot_starting",
		zap.String("env", cfg.Env),
		zap.String("asset", cfg.CoinSymbol),
		zap.String("provider", cfg.PriceProvider),
		zap.String("state_backend", cfg.StateBackend),
		zap.Duration("poll_interval", cfg.PollInterval),
		zap.Duration("message_max_age", cfg.MessageMaxAge),
		zap.Bool("pin", cfg.PinMessage),
	)

	if cfg.RunOnce {
		rep, err := app.Worker.RunOnce(ctx)
		if err != nil {
			log.Error("run_once_failed", zap.String("outcome", string(rep.Outcome)), zap.Error(err))
			return
		}
		log.Info("run_once_done", zap.String("outcome", string(rep.Outcome)))
		return
	}

	if app.HTTP != nil {
		go func() {
			log.Info("http_server_started", zap.String("addr", app.HTTP.Addr))
			if err := app.HTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("http_server_failed", zap.Error(err))
			}
		}()
	}

	app.Worker.Start(ctx)

	if app.HTTP != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), infraconfig.DefaultShutdownTimeout)
		defer cancel()
		_ = app.HTTP.Shutdown(shutdownCtx)
		log.Info("http_server_stopped")
	}
	log.Info("pricebot_stopped")
}
