package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/wargame-go/internal/api"
	"github.com/mcoot/wargame-go/internal/config"
	"github.com/mcoot/wargame-go/internal/factory"
	"github.com/mcoot/wargame-go/internal/server"
	redisstorage "github.com/mcoot/wargame-go/internal/storage/redis"
)

func newServeCmd() *cobra.Command {
	var (
		flagPort     int
		flagHTTPPort int
		flagStorage  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the War game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = flagPort
			}
			if cmd.Flags().Changed("http-port") {
				cfg.HTTPPort = flagHTTPPort
			}
			if cmd.Flags().Changed("storage") {
				cfg.StorageType = flagStorage
			}

			return runServe(cfg)
		},
	}

	cmd.Flags().IntVar(&flagPort, "port", 3336, "TCP port for game clients (env: WARGAME_PORT)")
	cmd.Flags().IntVar(&flagHTTPPort, "http-port", 0, "HTTP port for the introspection API, 0 to disable (env: WARGAME_HTTP_PORT)")
	cmd.Flags().StringVar(&flagStorage, "storage", "memory", "Match record backend: memory or redis (env: WARGAME_STORAGE_TYPE)")

	return cmd
}

func runServe(cfg config.Config) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.StorageType,
	}
	if cfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		if cfg.RedisURL != "" {
			redisCfg.URL = cfg.RedisURL
		}
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{Host: cfg.Host, Port: cfg.Port}, app.GameController, app.Pool, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	var httpServer *api.Server
	if cfg.HTTPPort > 0 {
		router := api.NewRouter(api.RouterConfig{
			Logger:  logger,
			Stats:   srv,
			Storage: app.Storage,
		})
		httpCfg := api.DefaultServerConfig()
		httpCfg.Host = cfg.Host
		httpCfg.Port = cfg.HTTPPort
		httpServer = api.NewServer(router, httpCfg, logger)

		go func() {
			if err := httpServer.Start(); err != nil {
				logger.Error("http server error", slog.String("error", err.Error()))
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run(ctx)
	}()

	select {
	case err := <-errCh:
		if err != nil && !isCancellation(err) {
			return err
		}
	case <-ctx.Done():
	}

	srv.Stop()
	if httpServer != nil {
		if err := httpServer.Shutdown(context.Background()); err != nil {
			logger.Error("http shutdown error", slog.String("error", err.Error()))
		}
	}

	logger.Info("server exited")
	return nil
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
