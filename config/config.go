// Package config loads the YAML configuration that selects a suite, an
// allocator and the algorithms an application opts in to.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-i2p/cryptokit"
	"github.com/go-i2p/cryptokit/backend"
	"github.com/go-i2p/cryptokit/logging"
	"github.com/go-i2p/cryptokit/memory"
	"github.com/go-i2p/cryptokit/mock"
)

// Allocator names.
const (
	AllocatorHeap   = "heap"
	AllocatorLocked = "locked"
)

// Algorithm groups accepted in the algorithms list.
const (
	GroupAll  = "all"
	GroupMock = "mock"
)

// Config represents the YAML configuration.
type Config struct {
	// Suite is the suite selector: a decimal or 0x-prefixed number, or
	// "mock".
	Suite string `yaml:"suite"`

	// Allocator is "heap" or "locked".
	Allocator string `yaml:"allocator"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Algorithms lists the registration groups to opt in to: "all",
	// "suite1" through "suite5", or "mock".
	Algorithms []string `yaml:"algorithms"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Suite:      "1",
		Allocator:  AllocatorHeap,
		LogLevel:   "info",
		Algorithms: []string{GroupAll},
	}
}

// Load reads and validates a configuration file. Keys missing from the
// file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML document.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks that every field holds a supported value.
func (c *Config) Validate() error {
	if _, err := c.SuiteID(); err != nil {
		return err
	}
	switch c.Allocator {
	case AllocatorHeap, AllocatorLocked:
	default:
		return fmt.Errorf("unsupported allocator: %q (use %q or %q)", c.Allocator, AllocatorHeap, AllocatorLocked)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if len(c.Algorithms) == 0 {
		return fmt.Errorf("algorithms must name at least one group")
	}
	for _, g := range c.Algorithms {
		if _, ok := groups[g]; !ok {
			return fmt.Errorf("unknown algorithm group: %q", g)
		}
	}
	return nil
}

// SuiteID parses the suite selector.
func (c *Config) SuiteID() (cryptokit.AlgorithmID, error) {
	s := strings.TrimSpace(c.Suite)
	if s == GroupMock {
		return cryptokit.SuiteMock, nil
	}
	n, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid suite selector %q: %w", c.Suite, err)
	}
	return cryptokit.AlgorithmID(n), nil
}

// Level returns the configured log level.
func (c *Config) Level() (slog.Level, error) {
	l, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// NewAllocator returns the configured allocator.
func (c *Config) NewAllocator() memory.Allocator {
	if c.Allocator == AllocatorLocked {
		return memory.NewLocked()
	}
	return memory.Heap{}
}

var groups = map[string]backend.RegisterFunc{
	GroupAll:  backend.RegisterAll,
	GroupMock: mock.Register,
	"suite1":  backend.RegisterSuite1,
	"suite2":  backend.RegisterSuite2,
	"suite3":  backend.RegisterSuite3,
	"suite4":  backend.RegisterSuite4,
	"suite5":  backend.RegisterSuite5,
}

// Register applies every configured algorithm group to reg.
func (c *Config) Register(reg *cryptokit.Registry) error {
	for _, g := range c.Algorithms {
		fn, ok := groups[g]
		if !ok {
			return fmt.Errorf("unknown algorithm group: %q", g)
		}
		if err := fn(reg); err != nil {
			return fmt.Errorf("register %s: %w", g, err)
		}
	}
	return nil
}

// Open registers the configured algorithms in a new registry, seals it and
// initializes the configured suite.
func (c *Config) Open(log logging.Logger) (*cryptokit.Registry, *cryptokit.Suite, error) {
	id, err := c.SuiteID()
	if err != nil {
		return nil, nil, err
	}
	reg := cryptokit.NewRegistry(cryptokit.WithLogger(log))
	if err := c.Register(reg); err != nil {
		return nil, nil, err
	}
	reg.Seal()
	suite, err := cryptokit.NewSuite(reg, c.NewAllocator(), id)
	if err != nil {
		return nil, nil, err
	}
	return reg, suite, nil
}
