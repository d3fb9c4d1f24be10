package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/finance-calculators/internal/logging"
	"github.com/iwvelando/finance-calculators/internal/server"
	"github.com/iwvelando/finance-calculators/pkg/cache"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func serveCommand(opts *rootOptions) *cobra.Command {
	var (
		serverConfigPath string
		address          string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the calculator HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.LoadConfig(serverConfigPath)
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Address = address
			}

			logger, err := logging.New(cfg.Logging, opts.logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, cfg, logger)
		},
	}

	cmd.Flags().StringVar(&serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&address, "address", "", "listen address override")

	return cmd
}

func runServer(ctx context.Context, cfg *server.Config, logger *zap.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m, err := metrics.New(reg)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	resultCache, closeCache := newCache(ctx, cfg, logger)
	defer closeCache()

	handler := server.NewHandler(logger, server.Options{
		MaxRequestSize: cfg.RequestSizeBytes(),
		Version:        version,
		ShareBaseURL:   cfg.ShareBaseURL,
		Cache:          resultCache,
		CacheTTL:       cfg.Cache.TTLDuration(),
		Metrics:        m,
		MetricsPath:    cfg.MetricsPath,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	})

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting webserver",
			zap.String("op", "main.runServer"),
			zap.String("address", cfg.Address),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("webserver failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("stopping webserver", zap.String("op", "main.runServer"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("could not stop webserver: %w", err)
	}
	return nil
}

func redisOptions(cfg *server.Config) cache.RedisOptions {
	return cache.RedisOptions{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
		Prefix:   cfg.Cache.KeyPrefix,
	}
}

// newCache picks the result cache described by cfg. An unreachable redis
// server is logged and replaced by the in-memory cache.
func newCache(ctx context.Context, cfg *server.Config, logger *zap.Logger) (cache.Cache, func()) {
	const op = "main.newCache"

	if cfg.Cache.Disabled {
		return nil, func() {}
	}

	if cfg.Cache.RedisAddr == "" {
		return cache.NewMemoryCache(cfg.Cache.MaxEntries), func() {}
	}

	redisCache := cache.NewRedisCache(redisOptions(cfg))

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := redisCache.Ping(pingCtx); err != nil {
		logger.Warn("redis unavailable, using in-memory cache",
			zap.String("op", op),
			zap.String("address", cfg.Cache.RedisAddr),
			zap.Error(err),
		)
		_ = redisCache.Close()
		return cache.NewMemoryCache(cfg.Cache.MaxEntries), func() {}
	}

	logger.Info("using redis result cache",
		zap.String("op", op),
		zap.String("address", cfg.Cache.RedisAddr),
	)
	return redisCache, func() {
		if err := redisCache.Close(); err != nil {
			logger.Warn("could not close redis client", zap.String("op", op), zap.Error(err))
		}
	}
}
