package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/JaimeStill/pdf-chat/pkg/logging"
)

func TestLevel_ToSlogLevel(t *testing.T) {
	tests := []struct {
		level logging.Level
		want  slog.Level
	}{
		{logging.LevelDebug, slog.LevelDebug},
		{logging.LevelInfo, slog.LevelInfo},
		{logging.LevelWarn, slog.LevelWarn},
		{logging.LevelError, slog.LevelError},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			if got := tt.level.ToSlogLevel(); got != tt.want {
				t.Errorf("ToSlogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&logging.Config{Level: logging.LevelWarn, Format: logging.FormatJSON}, &buf)

	logger.Info("dropped")
	logger.Warn("kept", "system", "ingestion")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "kept" {
		t.Errorf("msg = %v, want kept", entry["msg"])
	}
	if entry["service"] != "pdf-chat" {
		t.Errorf("service = %v, want pdf-chat", entry["service"])
	}
}

func TestConfig_Finalize(t *testing.T) {
	os.Setenv("TEST_LOG_LEVEL", "debug")
	defer os.Unsetenv("TEST_LOG_LEVEL")

	cfg := &logging.Config{}
	if err := cfg.Finalize(&logging.Env{Level: "TEST_LOG_LEVEL", Format: "TEST_LOG_FORMAT"}); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if cfg.Level != logging.LevelDebug {
		t.Errorf("Level = %q, want debug", cfg.Level)
	}
	if cfg.Format != logging.FormatText {
		t.Errorf("Format = %q, want text", cfg.Format)
	}

	bad := &logging.Config{Level: "loud"}
	if err := bad.Finalize(nil); err == nil {
		t.Error("Finalize() expected error for invalid level")
	}
}

func TestNewWithWriter_AddSource(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&logging.Config{Level: logging.LevelInfo, Format: logging.FormatJSON, AddSource: true}, &buf)

	logger.Info("traced")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if _, ok := entry[slog.SourceKey]; !ok {
		t.Errorf("entry missing %q: %v", slog.SourceKey, entry)
	}
}

func TestConfig_Merge_AddSource(t *testing.T) {
	base := &logging.Config{Level: logging.LevelInfo}
	base.Merge(&logging.Config{Format: logging.FormatJSON, AddSource: true})

	if base.Level != logging.LevelInfo || base.Format != logging.FormatJSON || !base.AddSource {
		t.Errorf("Merge() = %+v, want info/json/add_source", base)
	}
}
