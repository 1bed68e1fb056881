package handlers

import (
	"context"
	"net/http"
	"time"

	"ibraflix/internal/bot"
	"ibraflix/internal/services"

	"github.com/sirupsen/logrus"
)

// WebhookHandler acknowledges Telegram updates immediately and processes
// them in the background.
func WebhookHandler(commandHandler *bot.Handler, logger *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		update, err := services.ParseTelegramRequest(r)
		if err != nil {
			logger.WithError(err).Error("Error parsing request")
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

		go func() {
			defer cancel()
			commandHandler.ProcessMessage(ctx, update)
		}()

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}
