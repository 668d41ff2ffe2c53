package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "backend", "file")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line leaked: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "backend=file") {
		t.Fatalf("output = %q", out)
	}
	if !strings.Contains(out, "todo") {
		t.Fatalf("missing prefix: %q", out)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "loud"); err == nil {
		t.Fatal("expected error")
	}
}

func TestDiscard(t *testing.T) {
	Discard().Error("nothing happens")
}
