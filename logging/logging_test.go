package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNewTextWritesRecords(t *testing.T) {
	var buf bytes.Buffer
	l := NewText(&buf, slog.LevelDebug).With("component", "registry")
	l.Debug(context.Background(), "registered", "alg", 2, Redacted("key"))

	out := buf.String()
	for _, want := range []string{"registered", "component=registry", "alg=2", "key=[redacted]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestNewTextScrubsByteSlices(t *testing.T) {
	var buf bytes.Buffer
	l := NewText(&buf, slog.LevelInfo)
	l.Info(context.Background(), "keyed", "key", []byte("secret key bytes"), "name", "suite-1")

	out := buf.String()
	if strings.Contains(out, "secret") {
		t.Errorf("byte slice value written: %q", out)
	}
	for _, want := range []string{"[redacted] 16 bytes", "name=suite-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewText(&buf, slog.LevelWarn)
	l.Info(context.Background(), "hidden")
	l.Warn(context.Background(), "shown")
	l.Error(context.Background(), "also shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("info record written at warn level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("warn record missing")
	}
}

func TestNopAndDefault(t *testing.T) {
	Nop().Error(context.Background(), "discarded")
	if New(nil) == nil {
		t.Fatal("New(nil) returned nil")
	}
}

func TestParseLevel(t *testing.T) {
	testCases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range testCases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel accepted an unknown level")
	}
}
