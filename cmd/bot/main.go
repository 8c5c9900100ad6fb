package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/nattawatz/linkboard/internal/bot"
	"github.com/nattawatz/linkboard/internal/bot/api"
	"github.com/nattawatz/linkboard/internal/bot/webhook"
	"github.com/nattawatz/linkboard/internal/config"
	"github.com/nattawatz/linkboard/internal/logging"
)

func main() {
	// Load .env (non-fatal if missing in production)
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	client := api.New(cfg.APIBaseURL, cfg.RequestTimeout, cfg.InternalAuthSecret)
	notifier := webhook.New(cfg.LogWebhookURL, cfg.RequestTimeout, logger)

	handler := &bot.Handler{
		API: client,
		Roles: &bot.RoleResolver{
			Overrides: bot.NewOverrides(),
			API:       client,
			Fallback:  cfg.FallbackRoleID,
			Required:  cfg.RequiredRoleIDs,
		},
		Webhook: notifier,
		Log:     logger,
	}

	// Announce startup so operators can see the audit channel is wired.
	notifier.Send(context.Background(), webhook.Embed{
		Title:       "WEBHOOK TEST",
		Description: "Bot started. Logging is active.",
		Color:       webhook.ColorInfo,
	})

	adapter := &bot.Adapter{
		Handler: handler,
		Token:   cfg.ChatToken,
		Timeout: cfg.RequestTimeout,
		Log:     logger,
	}

	port := cfg.BotPort
	if port == "" {
		port = "8090"
	}

	if err := adapter.Router().Run(":" + port); err != nil {
		log.Println("bot server exited with error:", err)
		os.Exit(1)
	}
}
