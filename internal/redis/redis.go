package redis

import (
	"context"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Connect builds a client and verifies the server is reachable, retrying
// with exponential backoff. The caller owns the returned client.
func Connect(cfg Config, log *zap.Logger) (*redislib.Client, error) {
	client := redislib.NewClient(&redislib.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	const attempts = 5
	backoff := 200 * time.Millisecond

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		lastErr = client.Ping(ctx).Err()
		cancel()

		if lastErr == nil {
			log.Info("redis connected", zap.String("host", cfg.Host), zap.Int("db", cfg.DB))
			return client, nil
		}

		if attempt < attempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}

	_ = client.Close()
	return nil, fmt.Errorf("redis unreachable: %w", lastErr)
}
