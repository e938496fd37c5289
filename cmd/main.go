package main

import (
	"log"

	"pcb-inspector/config"
	telegram "pcb-inspector/internal/api"
	"pcb-inspector/internal/container"
	"pcb-inspector/internal/infrastructure/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}

	inspector, err := container.NewInspector(cfg)
	if err != nil {
		log.Fatalf("Failed to create inspector: %v", err)
	}

	// Хранилища пользователей и незавершённых проверок
	userRepo := storage.NewMemoryUserRepository()
	sessions := storage.NewMemorySessionRepository()

	// Собираем сервисы приложения
	appContainer := container.New(userRepo, sessions, inspector)

	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer, cfg.MaxFileBytes)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	log.Printf("Bot is running (inspector backend: %s, threshold: %d)...", cfg.InspectorBackend, cfg.Threshold)
	if err := bot.Run(); err != nil {
		log.Fatalf("Bot error: %v", err)
	}
}
