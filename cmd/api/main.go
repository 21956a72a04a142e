// cmd/api/main.go
package main

import (
	"context"
	"log/slog"
	"os"

	"hw-quote/internal/bot"
	"hw-quote/internal/catalog"
	"hw-quote/internal/config"
	"hw-quote/internal/handler"
	"hw-quote/internal/llm"
	"hw-quote/internal/middleware"
	"hw-quote/internal/pricing"
	"hw-quote/internal/storage"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg := config.MustLoad()

	// Настройка логгера
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	store, closeStore, err := storage.Open(context.Background(), cfg)
	if err != nil {
		slog.Error("Не удалось открыть хранилище", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	if cfg.GeminiAPIKey == "" {
		slog.Warn("GEMINI_API_KEY not set, match-config and generate-quote will fail")
	}
	assistant := llm.NewAssistant(llm.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL))

	catalogSvc := catalog.NewService(store)
	h := handler.NewQuoteHandler(catalogSvc, pricing.NewService(store), assistant)

	opts := handler.RouterOptions{
		CORSOrigins: cfg.CORSOrigins,
		Metrics:     middleware.NewMetrics(),
	}

	// Telegram webhook
	if cfg.TelegramToken != "" && cfg.PublicURL != "" {
		api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
		if err != nil {
			slog.Error("Не удалось инициализировать Telegram бота", "error", err)
			os.Exit(1)
		}

		webhookURL := cfg.PublicURL + "/telegram"
		if _, err := api.MakeRequest("setWebhook", tgbotapi.Params{"url": webhookURL}); err != nil {
			slog.Error("Не удалось установить webhook", "error", err)
			os.Exit(1)
		}
		slog.Info("Telegram webhook установлен", "url", webhookURL, "bot", api.Self.UserName)

		opts.Telegram = handler.TelegramWebhook(bot.New(catalogSvc, assistant), api)
	}

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(h, opts)

	slog.Info("🚀 Сервер запущен", "addr", cfg.ServerPort, "storage", cfg.StorageDriver)
	if err := router.Run(cfg.ServerPort); err != nil {
		slog.Error("Сервер завершил работу с ошибкой", "error", err)
		os.Exit(1)
	}
}
