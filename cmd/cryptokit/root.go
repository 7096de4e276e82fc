package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/go-i2p/cryptokit"
	"github.com/go-i2p/cryptokit/config"
	"github.com/go-i2p/cryptokit/logging"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	suite      string
	logLevel   string
}

// session is an opened registry and suite for one command.
type session struct {
	log   logging.Logger
	reg   *cryptokit.Registry
	suite *cryptokit.Suite
}

func (s *session) Close() {
	s.suite.Dispose()
}

// load reads the configuration file, if any, and applies flag overrides.
func (g *globalFlags) load() (*config.Config, error) {
	cfg := config.Default()
	if g.configPath != "" {
		var err error
		if cfg, err = config.Load(g.configPath); err != nil {
			return nil, err
		}
	}
	if g.suite != "" {
		cfg.Suite = g.suite
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// open loads the configuration and initializes its suite. Logs go to w.
func (g *globalFlags) open(w io.Writer) (*session, error) {
	cfg, err := g.load()
	if err != nil {
		return nil, err
	}
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	log := logging.NewText(w, level)
	reg, suite, err := cfg.Open(log)
	if err != nil {
		return nil, fmt.Errorf("failed to open suite %s: %w", cfg.Suite, err)
	}
	return &session{log: log, reg: reg, suite: suite}, nil
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "cryptokit",
		Short: "Inspect and exercise cryptokit algorithm suites",
		Long: `cryptokit lists the registered algorithms, describes a suite's sizes and
runs self tests over every primitive family of a suite.

Examples:
  # Run the self test for suite 3
  cryptokit selftest --suite 3

  # Use a configuration file
  cryptokit suite --config ./cryptokit.yaml

  # Draw 32 random bytes from the suite's generator
  cryptokit random --bytes 32`,
		Version:       cryptokit.VersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "Path to YAML configuration file")
	root.PersistentFlags().StringVar(&g.suite, "suite", "", "Suite to use (1-5 or mock), overrides the configuration")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newVersionCmd(),
		newAlgorithmsCmd(g),
		newSuiteCmd(g),
		newSelftestCmd(g),
		newRandomCmd(g),
	)
	return root
}
