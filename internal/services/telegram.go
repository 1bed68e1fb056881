package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"ibraflix/internal/models"
)

// telegramAPIURL is a variable so tests can point it at a local server.
var telegramAPIURL = "https://api.telegram.org/bot"

// SendTelegramMessage sends an HTML formatted message to a Telegram chat.
//
// Returns an error if marshaling the request, sending the HTTP request,
// or receiving a non-OK response from the Telegram API fails.
func SendTelegramMessage(ctx context.Context, botToken string, chatId int, text string) error {
	response := models.TelegramResponse{
		ChatId:                chatId,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	}

	jsonData, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s%s/sendMessage", telegramAPIURL, botToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error (status %d)", resp.StatusCode)
	}

	return nil
}

// ParseTelegramRequest decodes a webhook update from the request body.
func ParseTelegramRequest(r *http.Request) (*models.Update, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read update: %w", err)
	}

	var update models.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return nil, fmt.Errorf("failed to decode update: %w", err)
	}
	return &update, nil
}
