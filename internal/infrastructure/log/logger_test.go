package log

import (
	"log/slog"
	"os"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"invalid", slog.LevelInfo}, // 默认值
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := parseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Run("default config", func(t *testing.T) {
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("LOG_FORMAT")
		os.Unsetenv("ENV")

		cfg := NewConfigFromEnv()

		if cfg.Level != "info" {
			t.Errorf("expected default level info, got %s", cfg.Level)
		}
		if cfg.Format != "console" {
			t.Errorf("expected default format console, got %s", cfg.Format)
		}
	})

	t.Run("custom config", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("ENV", "production")

		cfg := NewConfigFromEnv()

		if cfg.Level != "debug" {
			t.Errorf("expected level debug, got %s", cfg.Level)
		}
		if cfg.Format != "json" {
			t.Errorf("expected format json, got %s", cfg.Format)
		}
	})

	t.Run("development env forces debug", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "error")
		t.Setenv("ENV", "development")

		cfg := NewConfigFromEnv()

		if cfg.Level != "debug" {
			t.Errorf("expected level debug in development, got %s", cfg.Level)
		}
		if !cfg.AddSource {
			t.Error("expected AddSource enabled in development")
		}
	})
}

func TestNewModuleLogger(t *testing.T) {
	Init(&Config{Level: "info", Format: "console"})

	logger := NewModuleLogger("storage", "room_store")
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
}
