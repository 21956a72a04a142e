// internal/handler/telegram.go
package handler

import (
	"log/slog"
	"net/http"

	"hw-quote/internal/bot"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramWebhook answers updates pushed by Telegram to POST /telegram.
func TelegramWebhook(b *bot.Bot, api bot.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var update tgbotapi.Update
		if err := c.ShouldBindJSON(&update); err != nil {
			slog.Error("Ошибка парсинга обновления", "error", err)
			c.Status(http.StatusBadRequest)
			return
		}
		b.Process(c.Request.Context(), api, update)
		c.Status(http.StatusOK)
	}
}
