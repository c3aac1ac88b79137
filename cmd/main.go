package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"imgfilter/config"
	telegram "imgfilter/internal/api"
	"imgfilter/internal/container"
	"imgfilter/internal/logger"
)

const componentMain = "main"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewConsole("info").Error(componentMain, err, map[string]interface{}{"stage": "config"})
		os.Exit(1)
	}

	log := logger.NewConsole(cfg.LogLevel)

	if cfg.TelegramToken == "" {
		log.Error(componentMain, errors.New("TELEGRAM_TOKEN is required"), nil)
		os.Exit(1)
	}

	// Собираем сервисы приложения
	appContainer, err := container.FromConfig(cfg, log)
	if err != nil {
		log.Error(componentMain, err, map[string]interface{}{"stage": "container"})
		os.Exit(1)
	}
	defer appContainer.Close()

	// Создаём бота
	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer, log)
	if err != nil {
		log.Error(componentMain, err, map[string]interface{}{"stage": "bot"})
		appContainer.Close()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info(componentMain, "bot is running", nil)
	if err := bot.Run(ctx); err != nil {
		log.Error(componentMain, err, map[string]interface{}{"stage": "run"})
	}
	log.Info(componentMain, "bot stopped", nil)
}
