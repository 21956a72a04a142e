package handler

import (
	"net/http"
	"testing"

	"hw-quote/internal/bot"
	"hw-quote/internal/catalog"
	"hw-quote/internal/middleware"
	"hw-quote/internal/pricing"
	"hw-quote/internal/storage/memory"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []tgbotapi.MessageConfig
}

func (s *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.sent = append(s.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

func setupWebhook(t *testing.T) (*gin.Engine, *recordingSender) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := memory.NewStorage(seedCatalog())
	cat := catalog.NewService(store)
	sender := &recordingSender{}
	h := NewQuoteHandler(cat, pricing.NewService(store), &fakeAssistant{})
	r := NewRouter(h, RouterOptions{
		Metrics:  middleware.NewMetrics(),
		Telegram: TelegramWebhook(bot.New(cat, &fakeAssistant{}), sender),
	})
	return r, sender
}

func TestTelegramWebhook(t *testing.T) {
	r, sender := setupWebhook(t)

	w := postJSON(r, "/telegram", `{
		"update_id": 1,
		"message": {"message_id": 7, "date": 0, "chat": {"id": 99, "type": "private"}, "text": "/calc cpu_1*2 discount=vip"}
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, int64(99), sender.sent[0].ChatID)
	assert.Contains(t, sender.sent[0].Text, "1,800.00")
}

func TestTelegramWebhook_IgnoresNonMessages(t *testing.T) {
	r, sender := setupWebhook(t)

	w := postJSON(r, "/telegram", `{"update_id": 2}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sender.sent)

	w = postJSON(r, "/telegram", `{"update_id": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
