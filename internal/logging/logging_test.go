package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	logger, err := New("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger == nil {
		t.Fatalf("expected logger instance")
	}
	_ = logger.Sync()
}

func TestNewLevels(t *testing.T) {
	logger, err := New("debug")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug level to be enabled")
	}

	if _, err := New("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestRedact(t *testing.T) {
	in := map[string]any{
		"host":     "db.example.com",
		"password": "hunter2",
		"API_KEY":  "abc",
		"token":    nil,
		"port":     5432,
	}

	got := Redact(in)

	if got["host"] != "db.example.com" || got["port"] != 5432 {
		t.Fatalf("expected plain values to pass through, got %v", got)
	}
	if got["password"] != Redacted || got["API_KEY"] != Redacted {
		t.Fatalf("expected secrets to be redacted, got %v", got)
	}
	if got["token"] != nil {
		t.Fatalf("expected nil secret to stay nil, got %v", got["token"])
	}
	if in["password"] != "hunter2" {
		t.Fatalf("input map must not be modified")
	}
}
