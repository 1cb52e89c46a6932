package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intellicath.log")
	log, err := New(Config{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log.Info("reading stored")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "reading stored") {
		t.Fatalf("log file missing message: %s", data)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(Config{Level: "chatty"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewDefaultsToInfo(t *testing.T) {
	log, err := New(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug should be disabled by default")
	}
}
