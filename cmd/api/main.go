package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GoSim-25-26J-441/chat-gateway/config"
	httpapi "github.com/GoSim-25-26J-441/chat-gateway/internal/api/http"
	"github.com/GoSim-25-26J-441/chat-gateway/internal/bootstrap"
	"github.com/GoSim-25-26J-441/chat-gateway/internal/gateway/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := bootstrap.NewLogger(os.Stdout, cfg.App.LogLevel, cfg.App.Environment)
	slog.SetDefault(logger)
	bootstrap.SetGinMode(cfg.App.Environment)

	metrics := service.NewMetrics()
	sink := service.NewSlogLogger(logger)

	client := service.NewInferenceClient(cfg.Downstream.BaseURL,
		service.WithTimeout(cfg.Downstream.Timeout),
		service.WithLogger(sink),
		service.WithMetrics(metrics),
	)

	var probe httpapi.ProbeSource
	if cfg.ProbeEnabled() {
		prober := service.NewProber(cfg.Downstream.BaseURL, cfg.Downstream.ProbeSchedule, sink, metrics)
		if err := prober.Start(); err != nil {
			logger.Error("downstream probe disabled", "error", err)
		} else {
			defer prober.Stop()
			probe = prober
		}
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:  cfg.App.ServiceName,
		Version:      cfg.App.Version,
		UpstreamURL:  cfg.Downstream.BaseURL,
		AllowOrigins: cfg.CORS.AllowOrigins,
		RateLimitRPS: cfg.RateLimit.RPS,
		RateBurst:    cfg.RateLimit.Burst,
		Runner:       client,
		Probe:        probe,
		Metrics:      metrics,
		Logger:       logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "downstream", client.RunURL(), "env", cfg.App.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server stopped", "error", err)
			return
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
