package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestInitAndGet(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}
	if err := Sync(); err != nil {
		t.Errorf("sync failed: %v", err)
	}
}

func TestFieldsAndLevels(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithWriter(&buf); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	ctx := context.Background()
	Get().Info(ctx, "artifact written", String("artifact", "team_tendencies"), Int("teams", 32))

	out := buf.String()
	if !strings.Contains(out, "artifact written") {
		t.Fatalf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "teams=32") {
		t.Fatalf("expected field in output, got %q", out)
	}

	// Debug is filtered out at the default level.
	buf.Reset()
	Get().Debug(ctx, "hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug should be filtered at info level, got %q", buf.String())
	}

	if err := SetLevelString("debug"); err != nil {
		t.Fatalf("set level: %v", err)
	}
	Get().Debug(ctx, "visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatal("debug should be visible after level change")
	}
}

func TestSetLevelStringRejectsUnknown(t *testing.T) {
	if err := SetLevelString("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNamed(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithWriter(&buf); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	Named("etl").Info(context.Background(), "run started")
	if !strings.Contains(buf.String(), "component=etl") {
		t.Fatalf("expected component field, got %q", buf.String())
	}
}
