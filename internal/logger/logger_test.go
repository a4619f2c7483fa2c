package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "zipfr", log.WarnLevel)
	l.Info("hidden")
	l.Warn("shown", "tag", "stopwords")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "stopwords") || !strings.Contains(out, "zipfr") {
		t.Fatalf("unexpected log output %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]log.Level{
		"":      log.InfoLevel,
		"debug": log.DebugLevel,
		"WARN":  log.WarnLevel,
		"error": log.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got != want {
			t.Fatalf("parse %q: expected %v, got %v", in, want, got)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestOpenFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "zipfr.log")
	for _, msg := range []string{"first", "second"} {
		l, closer, err := OpenFile(path, "zipfr", log.InfoLevel)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		l.Info(msg)
		if err := closer.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "first") || !strings.Contains(string(data), "second") {
		t.Fatalf("expected both entries, got %q", data)
	}
}
