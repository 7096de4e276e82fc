package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-i2p/cryptokit"
	"github.com/go-i2p/cryptokit/logging"
	"github.com/go-i2p/cryptokit/memory"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
suite: 0x3
allocator: heap
log_level: debug
algorithms: [suite3, mock]
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	id, _ := cfg.SuiteID()
	if id != cryptokit.Suite3 {
		t.Errorf("SuiteID = %s", id)
	}
	lvl, _ := cfg.Level()
	if lvl != slog.LevelDebug {
		t.Errorf("Level = %v", lvl)
	}
	if len(cfg.Algorithms) != 2 {
		t.Errorf("Algorithms = %v", cfg.Algorithms)
	}
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("suite: 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Allocator != AllocatorHeap || cfg.LogLevel != "info" || cfg.Algorithms[0] != GroupAll {
		t.Errorf("defaults not kept: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"default", func(*Config) {}, ""},
		{"mock suite", func(c *Config) { c.Suite = "mock" }, ""},
		{"bad suite", func(c *Config) { c.Suite = "two" }, "invalid suite selector"},
		{"bad allocator", func(c *Config) { c.Allocator = "pool" }, "unsupported allocator"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "invalid log_level"},
		{"no algorithms", func(c *Config) { c.Algorithms = nil }, "at least one group"},
		{"unknown group", func(c *Config) { c.Algorithms = []string{"suite9"} }, "unknown algorithm group"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cryptokit.yaml")
	if err := os.WriteFile(path, []byte("suite: mock\nalgorithms: [mock]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if id, _ := cfg.SuiteID(); id != cryptokit.SuiteMock {
		t.Errorf("SuiteID = %s", id)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of missing file succeeded")
	}
	if _, err := Parse([]byte("suite: [1, 2]\n")); err == nil {
		t.Error("Parse of malformed document succeeded")
	}
}

func TestOpenRegistersOnlyConfiguredGroups(t *testing.T) {
	cfg := Default()
	cfg.Suite = "2"
	cfg.Algorithms = []string{"suite1"}
	_, _, err := cfg.Open(logging.Nop())
	if !errors.Is(err, cryptokit.ErrMissingImplementation) {
		t.Errorf("suite 2 without its algorithms: %v", err)
	}

	cfg.Algorithms = []string{"suite1", "suite2"}
	reg, suite, err := cfg.Open(logging.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer suite.Dispose()
	if !reg.Sealed() {
		t.Error("registry not sealed")
	}
	if suite.Name != "suite-2" {
		t.Errorf("suite = %q", suite.Name)
	}
}

func TestNewAllocator(t *testing.T) {
	cfg := Default()
	if _, ok := cfg.NewAllocator().(memory.Heap); !ok {
		t.Errorf("heap config returned %T", cfg.NewAllocator())
	}
	cfg.Allocator = AllocatorLocked
	if _, ok := cfg.NewAllocator().(*memory.Locked); !ok {
		t.Errorf("locked config returned %T", cfg.NewAllocator())
	}
}
