package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/api"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/config"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/health"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/logging"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/metrics"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/server"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/session"
	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/transport"
)

const maxGoroutines = 10000

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	addr := flag.String("addr", "", "Listen address (overrides config and SLICE_ADDR)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.NewJSONLogger(os.Stderr, logging.ErrorLevel).Error("invalid configuration", logging.Error(err))
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.Log.Level))
	logger.Info("slice server starting",
		logging.String("provisioner", cfg.Provisioner.URL),
		logging.Int("max_sessions", cfg.Sessions.Max))

	reg := metrics.DefaultRegistry()

	client := transport.NewClient(cfg.Provisioner.URL, cfg.Provisioner.Timeout,
		transport.WithLogger(logger.With(logging.Component("transport"))),
		transport.WithMetrics(reg))

	sessions := session.NewManager(
		session.Config{Max: cfg.Sessions.Max, IdleTTL: cfg.Sessions.IdleTTL},
		session.WithLogger(logger),
		session.WithMetrics(reg))

	checker := health.NewHealthChecker()
	checker.RegisterLivenessCheck("api", health.SimpleCheck("api"))
	checker.RegisterLivenessCheck("goroutines", health.GoroutineCheck(maxGoroutines))
	checker.RegisterReadinessCheck("sessions", health.SessionCapacityCheck(sessions.Stats))
	checker.RegisterCheck("provisioner", health.ProvisionerCheck(client.Ping, 2*time.Second))

	apiServer := api.NewServer(cfg, sessions, client,
		api.WithLogger(logger),
		api.WithMetrics(reg),
		api.WithHealthChecker(checker))

	gs := server.NewGracefulServer(cfg.Server, apiServer.Handler(), logger)
	gs.SetReloadFunc(func() error {
		next, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		logger.SetLevel(logging.ParseLevel(next.Log.Level))
		logger.Info("log level reloaded", logging.String("level", next.Log.Level))
		return nil
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return gs.Run(gctx) })
	if cfg.Sessions.IdleTTL > 0 {
		g.Go(func() error {
			sessions.Run(gctx, cfg.Sessions.SweepInterval)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("server error", logging.Error(err))
		os.Exit(1)
	}
}
