package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"testing"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger()
	if logger == nil || logger.Logger == nil {
		t.Fatal("NewLogger() returned nil")
	}
}

func TestLogLevelFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected slog.Level
	}{
		{"debug level", "DEBUG", slog.LevelDebug},
		{"info level", "INFO", slog.LevelInfo},
		{"warn level", "WARN", slog.LevelWarn},
		{"warning level", "WARNING", slog.LevelWarn},
		{"error level", "ERROR", slog.LevelError},
		{"lowercase debug", "debug", slog.LevelDebug},
		{"padded", " error ", slog.LevelError},
		{"invalid level", "INVALID", slog.LevelInfo},
		{"empty value", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvLogLevel, tt.envValue)
			if level := getLogLevelFromEnv(); level != tt.expected {
				t.Errorf("getLogLevelFromEnv() = %v, want %v", level, tt.expected)
			}
		})
	}
}

func TestSessionID(t *testing.T) {
	t.Run("generate", func(t *testing.T) {
		id1 := GenerateSessionID()
		id2 := GenerateSessionID()
		if len(id1) != 16 {
			t.Errorf("GenerateSessionID() returned wrong length: %d", len(id1))
		}
		if id1 == id2 {
			t.Error("GenerateSessionID() returned duplicate IDs")
		}
	})

	t.Run("round trip", func(t *testing.T) {
		ctx := WithSessionID(context.Background(), "run-1")
		if got := GetSessionID(ctx); got != "run-1" {
			t.Errorf("GetSessionID() = %q, want %q", got, "run-1")
		}
	})

	t.Run("auto generate", func(t *testing.T) {
		ctx := WithSessionID(context.Background(), "")
		if got := GetSessionID(ctx); len(got) != 16 {
			t.Errorf("auto-generated session ID = %q", got)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if got := GetSessionID(context.Background()); got != "" {
			t.Errorf("GetSessionID() = %q, want empty string", got)
		}
	})
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse log JSON: %v", err)
	}
	return entry
}

func TestLoggerMethods(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, slog.LevelDebug)
	ctx := WithSessionID(context.Background(), "session-123")

	t.Run("info logging", func(t *testing.T) {
		buf.Reset()
		logger.Info(ctx, "rocket launched", "fuel", 0.5)

		entry := decode(t, &buf)
		if entry["msg"] != "rocket launched" {
			t.Errorf("msg = %v", entry["msg"])
		}
		if entry["level"] != "INFO" {
			t.Errorf("level = %v", entry["level"])
		}
		if entry["session_id"] != "session-123" {
			t.Errorf("session_id = %v", entry["session_id"])
		}
	})

	t.Run("error logging", func(t *testing.T) {
		buf.Reset()
		logger.Error(ctx, "save failed", errors.New("disk full"))

		entry := decode(t, &buf)
		if entry["level"] != "ERROR" || entry["error"] != "disk full" {
			t.Errorf("unexpected entry %v", entry)
		}
	})

	t.Run("float attributes are compacted", func(t *testing.T) {
		buf.Reset()
		logger.Debug(ctx, "telemetry", "speed", 7.123456789, "bad", math.Inf(1))

		entry := decode(t, &buf)
		if entry["speed"] != 7.123 {
			t.Errorf("speed = %v, want 7.123", entry["speed"])
		}
		if entry["bad"] != "+Inf" {
			t.Errorf("bad = %v, want +Inf", entry["bad"])
		}
	})

	t.Run("level filtering", func(t *testing.T) {
		buf.Reset()
		quiet := NewLoggerWithWriter(&buf, slog.LevelWarn)
		quiet.Info(ctx, "hidden")
		if buf.Len() != 0 {
			t.Errorf("Info written below WARN level: %s", buf.String())
		}
	})
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error(context.Background(), "dropped", errors.New("x"))
}

func TestWrapError(t *testing.T) {
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should return nil")
	}

	base := errors.New("original error")
	wrapped := WrapError(base, "load replay %s", "a.sav")
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error does not match original")
	}
	if wrapped.Error() != "load replay a.sav: original error" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
}
