package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/go-i2p/cryptokit"
)

// executeCommand runs a fresh root command with args and returns its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	root := newRootCmd()
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cryptokit.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestU_Version(t *testing.T) {
	out, err := executeCommand(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != cryptokit.VersionString() {
		t.Errorf("version = %q", out)
	}
}

func TestU_Algorithms(t *testing.T) {
	out, err := executeCommand(t, "algorithms", "--log-level", "error")
	if err != nil {
		t.Fatalf("algorithms: %v", err)
	}
	for _, want := range []string{"INTERFACE", "SHA-256", "Ed25519", "suite-5"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestU_Suite(t *testing.T) {
	out, err := executeCommand(t, "suite", "--suite", "2", "--log-level", "error")
	if err != nil {
		t.Fatalf("suite: %v", err)
	}
	if !strings.Contains(out, "suite-2") {
		t.Errorf("output missing suite name:\n%s", out)
	}
}

func TestU_SelftestPasses(t *testing.T) {
	out, err := executeCommand(t, "selftest", "--suite", "1", "--log-level", "error")
	if err != nil {
		t.Fatalf("selftest: %v\n%s", err, out)
	}
	if strings.Contains(out, "FAIL") {
		t.Errorf("unexpected failure:\n%s", out)
	}
}

func TestU_SelftestFailsForUnwiredMock(t *testing.T) {
	path := writeConfig(t, "suite: mock\nlog_level: error\nalgorithms: [mock]\n")
	out, err := executeCommand(t, "selftest", "--config", path)
	if err == nil {
		t.Fatalf("selftest of unwired mock succeeded:\n%s", out)
	}
	if !strings.Contains(out, "FAIL") {
		t.Errorf("no failures listed:\n%s", out)
	}
}

func TestU_Random(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		match func(string) bool
	}{
		{
			name:  "hex",
			args:  []string{"--bytes", "4"},
			match: regexp.MustCompile(`^[0-9A-F]{8}$`).MatchString,
		},
		{
			name:  "base64",
			args:  []string{"--bytes", "3", "--format", "base64"},
			match: regexp.MustCompile(`^[A-Za-z0-9+/]{4}$`).MatchString,
		},
		{
			name: "uuid",
			args: []string{"--format", "uuid"},
			match: func(s string) bool {
				_, err := uuid.Parse(s)
				return err == nil
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"random", "--log-level", "error"}, tt.args...)
			out, err := executeCommand(t, args...)
			if err != nil {
				t.Fatalf("random: %v", err)
			}
			if got := strings.TrimSpace(out); !tt.match(got) {
				t.Errorf("random %v = %q", tt.args, got)
			}
		})
	}
}

func TestU_RandomLogsRedacted(t *testing.T) {
	out, err := executeCommand(t, "random", "--bytes", "4", "--log-level", "debug")
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	if !strings.Contains(out, "value=[redacted]") {
		t.Errorf("debug log missing redacted value:\n%s", out)
	}
}

func TestU_RandomErrors(t *testing.T) {
	for _, args := range [][]string{
		{"random", "--bytes", "0"},
		{"random", "--format", "octal"},
		{"random", "--suite", "9"},
		{"random", "--config", filepath.Join(t.TempDir(), "missing.yaml")},
	} {
		if _, err := executeCommand(t, args...); err == nil {
			t.Errorf("%v succeeded", args)
		}
	}
}
