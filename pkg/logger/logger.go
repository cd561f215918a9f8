package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide logger instance.
var Logger *zap.Logger

// Init builds the global logger. Production gets JSON at the configured
// level, anything else gets a colored development console.
func Init(env, level string) error {
	var config zap.Config

	if env == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		parsed = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(parsed)

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	Logger, err = config.Build()
	if err != nil {
		return err
	}

	return nil
}

// Get returns the global logger, falling back to a development logger when
// Init has not run (tests, mostly).
func Get() *zap.Logger {
	if Logger == nil {
		fallback, _ := zap.NewDevelopment()
		return fallback
	}
	return Logger
}

// Sync flushes any buffered log entries.
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}
