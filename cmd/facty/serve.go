package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/factybot/facty/pkg/agent"
	"github.com/factybot/facty/pkg/config"
	"github.com/factybot/facty/pkg/logger"
	"github.com/factybot/facty/pkg/metrics"
	"github.com/factybot/facty/pkg/providers"
	"github.com/factybot/facty/pkg/session"
	"github.com/factybot/facty/pkg/web"
)

func serveCmd() *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, demo UI and metrics endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(false); err != nil {
				return err
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if port != 0 {
				cfg.Server.Port = port
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "bind address (overrides SERVER_HOST)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides SERVER_PORT)")
	return cmd
}

func runServe(cfg *config.Config) error {
	logger.Init(cfg.Environment)

	completer, err := providers.Create(cfg)
	if err != nil {
		return fmt.Errorf("creating model gateway: %w", err)
	}

	store := session.NewStore()
	srv := web.NewServer(cfg.Server.Host, cfg.Server.Port, agent.New(store, completer))

	go trackUptime(store)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	logger.Info("main").
		Str("backend", completer.Backend()).
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Msg("facty serving")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("main").Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(ctx)
}

// trackUptime refreshes the process gauges once a minute.
func trackUptime(store *session.Store) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		metrics.DefaultRecorder().UpdateUptime()
		metrics.DefaultRecorder().SetSessionsActive(store.Len())
	}
}
