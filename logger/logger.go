// Package logger builds the service's zap logger.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls the log level and the optional rotating log file.
type Config struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// New returns a logger writing human-readable lines to stderr and, when
// File is set, JSON lines to a lumberjack-rotated file.
func New(config Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if config.Level != "" {
		parsed, err := zapcore.ParseLevel(config.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stderr), level),
	}
	if config.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   config.File,
			MaxSize:    orDefault(config.MaxSizeMB, 50),
			MaxBackups: orDefault(config.MaxBackups, 5),
			MaxAge:     orDefault(config.MaxAgeDays, 30),
			Compress:   config.Compress,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(rotator), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

func orDefault(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}
