package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config настройки логгера
type Config struct {
	Level  string // debug, info, warn, error
	Format string // console или json
}

// New создаёт zap логгер по настройкам.
// debug включает development конфиг с человекочитаемым временем.
func New(cfg Config) (*zap.Logger, error) {
	var config zap.Config
	if strings.EqualFold(cfg.Level, "debug") {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
		level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			level = zapcore.InfoLevel
		}
		config.Level = zap.NewAtomicLevelAt(level)
	}

	if strings.EqualFold(cfg.Format, "json") {
		config.Encoding = "json"
	} else {
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		config.DisableStacktrace = true
	}

	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.MessageKey = "message"

	return config.Build()
}
