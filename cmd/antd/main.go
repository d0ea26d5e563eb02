// antd is the ant colony game server daemon.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/dantte-lp/antcolonyd/internal/bridge"
	"github.com/dantte-lp/antcolonyd/internal/config"
	"github.com/dantte-lp/antcolonyd/internal/lobby"
	"github.com/dantte-lp/antcolonyd/internal/metrics"
	appversion "github.com/dantte-lp/antcolonyd/internal/version"
)

// shutdownTimeout is the maximum time to wait for the metrics server to
// drain active connections during graceful shutdown.
const shutdownTimeout = 10 * time.Second

const metricsAddr = ":9090"
const metricsPath = "/metrics"

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.json", "path to configuration file (JSON)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("failed to load configuration",
			slog.String("error", err.Error()),
		)
		return 1
	}

	logLevel := new(slog.LevelVar)
	logLevel.Set(config.ParseLogLevel(cfg.Log.Level))
	logger := newLoggerWithLevel(cfg.Log, logLevel)

	logger.Info("antd starting",
		slog.String("version", appversion.Version),
		slog.String("addr", fmt.Sprintf("%s:%d", cfg.IP, cfg.Port)),
		slog.String("metrics_addr", metricsAddr),
	)

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	lob := lobby.New(cfg, logger, collector)

	if err := runServers(cfg, lob, reg, logger); err != nil {
		logger.Error("antd exited with error", slog.String("error", err.Error()))
		return 1
	}

	logger.Info("antd stopped")
	return 0
}

func runServers(cfg *config.Config, lob *lobby.Lobby, reg *prometheus.Registry, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	metricsSrv := newMetricsServer(reg)

	g.Go(func() error {
		lob.Run(gCtx)
		return nil
	})

	g.Go(func() error {
		logger.Info("metrics server listening", slog.String("addr", metricsAddr), slog.String("path", metricsPath))
		return listenAndServe(gCtx, metricsSrv, metricsAddr)
	})

	g.Go(func() error {
		return serveGame(gCtx, cfg, lob, logger)
	})

	g.Go(func() error {
		<-gCtx.Done()
		return gracefulShutdown(gCtx, logger, metricsSrv)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("run servers: %w", err)
	}
	return nil
}

// serveGame accepts client connections and hands each to bridge.Serve on
// its own goroutine until ctx is cancelled.
func serveGame(ctx context.Context, cfg *config.Config, lob *lobby.Lobby, logger *slog.Logger) error {
	addr := fmt.Sprintf("%s:%d", cfg.IP, cfg.Port)
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	logger.Info("game server listening", slog.String("addr", addr))

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		go bridge.Serve(ctx, conn, lob, logger)
	}
}

func gracefulShutdown(ctx context.Context, logger *slog.Logger, servers ...*http.Server) error {
	logger.Info("initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	var shutdownErr error
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			shutdownErr = errors.Join(shutdownErr, fmt.Errorf("shutdown server: %w", err))
		}
	}
	return shutdownErr
}

func listenAndServe(ctx context.Context, srv *http.Server, addr string) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve on %s: %w", addr, err)
	}
	return nil
}

func newMetricsServer(reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(metricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return &http.Server{
		Addr:              metricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func newLoggerWithLevel(cfg config.LogConfig, level *slog.LevelVar) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
