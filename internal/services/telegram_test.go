package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ibraflix/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendTelegramMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)

		var body models.TelegramResponse
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 42, body.ChatId)
		assert.Equal(t, "HTML", body.ParseMode)
		assert.Equal(t, "hello", body.Text)
	}))
	defer srv.Close()

	old := telegramAPIURL
	telegramAPIURL = srv.URL + "/bot"
	defer func() { telegramAPIURL = old }()

	require.NoError(t, SendTelegramMessage(context.Background(), "TOKEN", 42, "hello"))
}

func TestSendTelegramMessageReportsAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	old := telegramAPIURL
	telegramAPIURL = srv.URL + "/bot"
	defer func() { telegramAPIURL = old }()

	err := SendTelegramMessage(context.Background(), "TOKEN", 42, "hello")
	assert.ErrorContains(t, err, "403")
}

func TestParseTelegramRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"update_id":1,"message":{"text":"/help","chat":{"id":7},"from":{"id":7,"username":"ib"}}}`))

	update, err := ParseTelegramRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "/help", update.Message.Text)
	assert.Equal(t, 7, update.Message.Chat.Id)

	_, err = ParseTelegramRequest(httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{`)))
	assert.Error(t, err)
}
