package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestInitializeAndLogWrites(t *testing.T) {
	dir := t.TempDir()
	if err := Initialize(dir, slog.LevelInfo); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	t.Cleanup(func() { _ = Close() })

	path := Path()
	if !strings.HasPrefix(path, dir) {
		t.Fatalf("expected log under %s, got %q", dir, path)
	}

	Logger().Info("extracting frames", "fps", 10)
	Logger().Debug("frame drawn", "index", 3)
	if err := Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "msg=\"extracting frames\" fps=10") {
		t.Errorf("expected info line, got: %q", content)
	}
	if strings.Contains(content, "frame drawn") {
		t.Errorf("debug line should be filtered at info level: %q", content)
	}
}

func TestDisabledByDefault(t *testing.T) {
	if err := Initialize("", slog.LevelDebug); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if Path() != "" {
		t.Errorf("expected no log path, got %q", Path())
	}
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("disabled logger should not accept records")
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, slog.LevelDebug)
	l.Debug("hello", "who", "world")
	if !strings.Contains(buf.String(), "level=DEBUG msg=hello who=world") {
		t.Errorf("unexpected output %q", buf.String())
	}
}
