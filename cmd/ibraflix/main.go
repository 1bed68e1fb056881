package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"ibraflix/internal/bot"
	"ibraflix/internal/config"
	"ibraflix/internal/container"
	"ibraflix/internal/handlers"
	"ibraflix/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	logger.Init()
	log := logger.Get()

	err := godotenv.Load(".env.local")
	if err != nil {
		log.Info("No .env file found, using system environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := container.New(ctx)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize services")
	}
	defer c.Close()

	var webhook http.Handler
	telegram := config.Telegram()
	if telegram.BotToken != "" {
		commands := bot.NewHandler(c.MediaService, log, bot.TelegramSender(telegram.BotToken), telegram.OwnerChatID)
		webhook = handlers.WebhookHandler(commands, log)
	} else {
		log.Info("BOT_TOKEN not set, Telegram webhook disabled")
	}

	port := config.GetEnv("PORT", "8080")
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           handlers.NewRouter(handlers.NewAPI(c.MediaService, log), webhook, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Ibraflix starting on port %s", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("HTTP server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
}
