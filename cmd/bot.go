package main

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	telegram "tray-check/internal/api"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Запустить Telegram-бота",
	RunE:  runBot,
}

func runBot(cmd *cobra.Command, args []string) error {
	a, err := buildApp("")
	if err != nil {
		return err
	}
	defer a.close()

	if a.cfg.TelegramToken == "" {
		return errors.New("TELEGRAM_TOKEN is required")
	}

	bot, err := telegram.NewBot(a.cfg.TelegramToken, a.container)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("bot is running")
	return bot.Run(ctx)
}
