package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/marmos91/membuf/internal/httpapi"
	"github.com/marmos91/membuf/internal/logger"
	"github.com/marmos91/membuf/pkg/bufalloc"
	"github.com/marmos91/membuf/pkg/metrics"

	// Register the Prometheus metrics constructors.
	_ "github.com/marmos91/membuf/pkg/metrics/prometheus"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve allocator stats and metrics over HTTP",
	Long: `Start an HTTP server exposing allocator stats and Prometheus metrics.

The server creates one allocator of each kind (heap, pool, arena) from the
configuration and exposes their counters:

  GET /health   liveness probe
  GET /stats    allocator stats as JSON
  GET /metrics  Prometheus exposition (when metrics are enabled)

Examples:
  membuf serve
  MEMBUF_SERVER_PORT=9700 membuf serve`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var allocMetrics bufalloc.Metrics
	if cfg.Server.MetricsEnabled {
		metrics.InitRegistry()
		allocMetrics = metrics.NewAllocatorMetrics()
		logger.Info("metrics enabled")
	} else {
		logger.Info("metrics disabled")
	}

	allocators := []bufalloc.Allocator{
		bufalloc.NewHeap(allocMetrics),
		bufalloc.NewPool(cfg.Alloc.PoolAllocConfig(), allocMetrics),
		bufalloc.NewArena(cfg.Alloc.ArenaCapacity.Int64(), allocMetrics),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := httpapi.NewServer(cfg.Server.Port, cfg.Server.ShutdownTimeout, allocators)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Start(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("server is running, press Ctrl+C to stop", "port", cfg.Server.Port)

	select {
	case <-sigChan:
		signal.Stop(sigChan)
		logger.Info("shutdown signal received")
		cancel()
		return <-serverDone
	case err := <-serverDone:
		signal.Stop(sigChan)
		return err
	}
}
