package observability

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLoggerLevels(t *testing.T) {
	logger, err := NewLogger("debug", "")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug to be enabled")
	}

	logger, err = NewLogger("verbose", "")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if logger.Core().Enabled(zapcore.DebugLevel) || !logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("unknown level should fall back to info")
	}
}

func TestContextRoundTrip(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	ctx := WithLogger(context.Background(), logger)
	FromContext(ctx).Info("hello", zap.String("k", "v"))
	if logs.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", logs.Len())
	}
	if got := logs.All()[0].ContextMap()["k"]; got != "v" {
		t.Fatalf("expected field k=v, got %v", got)
	}

	// no logger stored: still usable
	FromContext(context.Background()).Info("dropped")
	if FromContext(nil) == nil || OrNop(nil) == nil {
		t.Fatalf("expected noop logger")
	}
}
