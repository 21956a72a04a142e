// internal/bot/telegram.go
package bot

import (
	"context"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the part of *tgbotapi.BotAPI the bot needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Reply builds the Markdown answer to an incoming message.
func (b *Bot) Reply(ctx context.Context, msg *tgbotapi.Message) tgbotapi.MessageConfig {
	text := strings.TrimSpace(FixEncoding(msg.Text))
	slog.Info("📥 Received message", "chat_id", msg.Chat.ID, "text", text)

	out := tgbotapi.NewMessage(msg.Chat.ID, b.Handle(ctx, text))
	out.ParseMode = tgbotapi.ModeMarkdown
	return out
}

// Process answers one update. Updates without a text message are ignored.
func (b *Bot) Process(ctx context.Context, api Sender, update tgbotapi.Update) {
	if update.Message == nil || update.Message.Chat == nil {
		return
	}
	reply := b.Reply(ctx, update.Message)
	if _, err := api.Send(reply); err != nil {
		slog.Error("Failed to send message", "chat_id", reply.ChatID, "error", err)
	}
}
