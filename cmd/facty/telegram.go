package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/factybot/facty/pkg/agent"
	"github.com/factybot/facty/pkg/channels"
	"github.com/factybot/facty/pkg/config"
	"github.com/factybot/facty/pkg/logger"
	"github.com/factybot/facty/pkg/providers"
	"github.com/factybot/facty/pkg/session"
)

func telegramCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "telegram",
		Short: "Run the Telegram bot over long polling",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(true); err != nil {
				return err
			}
			return runTelegram(cfg)
		},
	}
}

func runTelegram(cfg *config.Config) error {
	logger.Init(cfg.Environment)

	completer, err := providers.Create(cfg)
	if err != nil {
		return fmt.Errorf("creating model gateway: %w", err)
	}

	channel, err := channels.NewTelegramChannel(cfg.Telegram.BotToken, agent.New(session.NewStore(), completer))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("main").Str("signal", sig.String()).Msg("shutting down")
		cancel()
	}()

	logger.Info("main").Str("backend", completer.Backend()).Msg("telegram bot starting")
	return channel.Run(ctx)
}
