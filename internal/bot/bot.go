package bot

import (
	"context"

	"ibraflix/internal/services"
)

// Sender delivers a formatted message to a chat.
type Sender func(ctx context.Context, chatID int, text string) error

// TelegramSender sends through the Bot API with botToken.
func TelegramSender(botToken string) Sender {
	return func(ctx context.Context, chatID int, text string) error {
		return services.SendTelegramMessage(ctx, botToken, chatID, text)
	}
}
