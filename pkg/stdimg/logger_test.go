package stdimg

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}
}

func TestSetLoggerCapturesUnknownFilter(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	if _, err := ApplyFilter(makePatternBuffer(t, 2, 2), "mystery"); err != nil {
		t.Fatalf("ApplyFilter failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "unknown filter") || !strings.Contains(out, "id=mystery") {
		t.Fatalf("expected unknown-filter debug record, got %q", out)
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Fatalf("SetLogger(nil) should restore the silent logger")
	}
}
