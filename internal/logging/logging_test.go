package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestNew_DefaultLevel(t *testing.T) {
	logger := New("", "text")
	if logger == nil {
		t.Fatal("Expected non-nil logger")
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Expected debug to be disabled at default level")
	}
}

func TestNew_DebugLevel(t *testing.T) {
	logger := New("debug", "json")
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Expected debug level to be enabled")
	}
}

func TestNew_ErrorLevel(t *testing.T) {
	logger := New("error", "text")
	if logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Expected info level to be disabled at error level")
	}
}

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := context.Background()
	if id := RequestID(ctx); id != "" {
		t.Errorf("Expected empty request ID, got %q", id)
	}

	ctx = WithRequestID(ctx, "req-abc")
	if id := RequestID(ctx); id != "req-abc" {
		t.Errorf("Expected req-abc, got %q", id)
	}
}

func TestFromContext_Default(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("Expected default logger")
	}
}

func TestL_WithRequestID(t *testing.T) {
	ctx := WithLogger(context.Background(), New("info", "text"))
	ctx = WithRequestID(ctx, "req-1")
	if L(ctx) == nil {
		t.Fatal("Expected non-nil logger from L()")
	}
}
