package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/nvara/voicebox/config"
	"github.com/nvara/voicebox/internal/bot"
	"github.com/nvara/voicebox/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Error: Failed to load configuration: %v", err)
		log.Println("")
		log.Println("Please ensure you have set the following environment variables:")
		log.Println("  BOT_TOKEN              - Your Telegram bot token (required)")
		log.Println("")
		log.Println("Optional environment variables:")
		log.Println("  VOICE_BRIDGE_URL       - Voice bridge websocket URL (default: ws://127.0.0.1:8900)")
		log.Println("  VOICE_BRIDGE_TIMEOUT   - Voice bridge call timeout in seconds (default: 30)")
		log.Println("  YOUTUBE_API_KEY        - YouTube Data API key (enables /play search)")
		log.Println("  MAX_QUEUE_SIZE         - Maximum queue size per chat (default: 500)")
		log.Println("  POLL_TIMEOUT           - getUpdates long-poll timeout in seconds (default: 30)")
		log.Println("  ENV                    - production or development (default: development)")
		log.Println("  LOG_LEVEL              - Log level (debug, info, warn, error)")
		log.Println("")
		log.Println("Database configuration (optional, persists control panels):")
		log.Println("  DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME, DB_SSLMODE")
		log.Println("")
		log.Println("Redis configuration (optional, caches search results):")
		log.Println("  REDIS_HOST, REDIS_PORT, REDIS_PASSWORD, REDIS_DB")
		os.Exit(1)
	}

	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		log.Fatalf("Error: Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	zl := logger.Get()
	zl.Info("voicebox starting",
		zap.String("env", cfg.Env),
		zap.String("bridge", cfg.VoiceBridgeURL),
		zap.Int("max_queue_size", cfg.MaxQueueSize),
		zap.Bool("database", cfg.HasDatabase()),
		zap.Bool("redis", cfg.HasRedis()),
		zap.Bool("search", cfg.HasYouTube()),
	)

	b, err := bot.New(cfg, zl)
	if err != nil {
		zl.Fatal("failed to create bot", zap.Error(err))
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- b.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		zl.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			zl.Error("bot exited", zap.Error(err))
		}
	}

	if err := b.Stop(); err != nil {
		zl.Error("failed to stop bot", zap.Error(err))
	}
}
