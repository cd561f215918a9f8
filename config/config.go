package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	BotToken string

	VoiceBridgeURL     string
	VoiceBridgeTimeout int

	YouTubeAPIKey string

	Env      string
	LogLevel string

	MaxQueueSize int
	PollTimeout  int

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisHost     string
	RedisPort     int
	RedisPassword string
	RedisDB       int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BotToken: os.Getenv("BOT_TOKEN"),

		VoiceBridgeURL:     getEnvWithDefault("VOICE_BRIDGE_URL", "ws://127.0.0.1:8900"),
		VoiceBridgeTimeout: getEnvAsIntWithDefault("VOICE_BRIDGE_TIMEOUT", 30),

		YouTubeAPIKey: os.Getenv("YOUTUBE_API_KEY"),

		Env:      getEnvWithDefault("APP_ENV", "development"),
		LogLevel: getEnvWithDefault("LOG_LEVEL", "info"),

		MaxQueueSize: getEnvAsIntWithDefault("MAX_QUEUE_SIZE", 500),
		PollTimeout:  getEnvAsIntWithDefault("POLL_TIMEOUT", 30),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getEnvAsInt("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  getEnvWithDefault("DB_SSLMODE", "disable"),

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnvAsInt("REDIS_PORT"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvAsIntWithDefault("REDIS_DB", 0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.BotToken == "" {
		return errors.New("BOT_TOKEN is required")
	}

	if c.VoiceBridgeURL == "" {
		return errors.New("VOICE_BRIDGE_URL must not be empty")
	}

	if c.MaxQueueSize < 1 {
		return errors.New("MAX_QUEUE_SIZE must be at least 1")
	}

	if c.VoiceBridgeTimeout < 1 {
		return errors.New("VOICE_BRIDGE_TIMEOUT must be at least 1 second")
	}

	return nil
}

func (c *Config) HasDatabase() bool {
	return c.DBHost != "" && c.DBName != ""
}

func (c *Config) HasRedis() bool {
	return c.RedisHost != ""
}

func (c *Config) HasYouTube() bool {
	return c.YouTubeAPIKey != ""
}

func getEnvAsInt(key string) int {
	return getEnvAsIntWithDefault(key, 0)
}

func getEnvAsIntWithDefault(key string, defaultValue int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvWithDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}
