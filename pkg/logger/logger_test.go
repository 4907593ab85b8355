package logger

import (
	"context"
	"testing"
)

func TestLoggerBasic(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	l := Get()
	if l == nil {
		t.Fatal("logger is nil")
	}

	ctx := context.Background()
	l.Info(ctx, "test message", String("k", "v"), Int("n", 1))
	l.Debug(ctx, "debug message", Float64("f", 1.5))
	l.Warn(ctx, "warn message", Bool("b", true))
}

func TestLoggerNamed(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	named := Named("test")
	if named == nil {
		t.Fatal("named logger is nil")
	}
	named.Info(context.Background(), "test message")
}

func TestSetLevelString(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	for _, level := range []string{"debug", "info", "warn", "warning", "error", ""} {
		if err := SetLevelString(level); err != nil {
			t.Errorf("SetLevelString(%q) returned error: %v", level, err)
		}
	}

	if err := SetLevelString("chatty"); err == nil {
		t.Error("expected error for unknown level")
	}
}
