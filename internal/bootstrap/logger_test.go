package bootstrap

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{"chatty", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewZapLogger_Level(t *testing.T) {
	z, err := NewZapLogger("warn")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if z.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if !z.Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn should be enabled")
	}
}

func TestNewSlogLogger_WritesThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewSlogLogger(zap.New(core))

	logger.With("handler", "metrics").InfoContext(context.Background(), "counter updated", "field", "calls")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if entries[0].Message != "counter updated" || fields["handler"] != "metrics" || fields["field"] != "calls" {
		t.Errorf("unexpected entry %+v", entries[0])
	}
}
