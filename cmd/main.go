package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/angeloszaimis/calc-service/config"
	"github.com/angeloszaimis/calc-service/internal/handler"
	"github.com/angeloszaimis/calc-service/internal/healthcheck"
	"github.com/angeloszaimis/calc-service/internal/httpserver"
	"github.com/angeloszaimis/calc-service/internal/metrics"
	"github.com/angeloszaimis/calc-service/pkg/logger"
)

const probeTimeout = 3 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Server.Environment != config.EnvProd, cfg.Server.Environment)

	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		if err := runHealthcheck(cfg); err != nil {
			log.Error("Health check failed", slog.Any("err", err))
			os.Exit(1)
		}
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("Server stopped with error", slog.Any("err", err))
		os.Exit(1)
	}
}

// run serves until ctx is cancelled or the listener fails.
func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(cfg.Metrics.BufferSize, log)
		collector.Start(ctx)
	}

	h := handler.NewHandler(log, collector)

	srv, err := httpserver.New(cfg.Address(), setupRouter(h, collector), log)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	srvErrCh := make(chan error, 1)

	go func() {
		srvErrCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
		if err := srv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-srvErrCh:
		if err != nil {
			return fmt.Errorf("start server: %w", err)
		}
		return nil
	}
}

func runHealthcheck(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	return healthcheck.Probe(ctx, probeURL(cfg))
}

// probeURL targets loopback when the server listens on all interfaces.
func probeURL(cfg *config.Config) string {
	host := cfg.Server.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}

	return "http://" + net.JoinHostPort(host, strconv.Itoa(cfg.Server.Port))
}
