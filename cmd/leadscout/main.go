package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/leadscout/internal/config"
	logpkg "github.com/kailas-cloud/leadscout/internal/logger"
	"github.com/kailas-cloud/leadscout/internal/version"
)

// cli carries the state shared by every subcommand after PersistentPreRunE.
type cli struct {
	env        string
	configPath string
	cfg        config.Config
	logger     *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:          version.Service,
		Short:        "Find business contacts with grounded generative search",
		Version:      version.String(),
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return c.load()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&c.env, "env", config.GetEnv(), "environment: local, dev, docker, prod")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default config/<env>.yaml)")

	root.AddCommand(newServeCmd(c), newSearchCmd(c))
	return root
}

func (c *cli) load() error {
	var err error
	if c.configPath != "" {
		var data []byte
		data, err = os.ReadFile(filepath.Clean(c.configPath))
		if err != nil {
			return fmt.Errorf("read config %s: %w", c.configPath, err)
		}
		c.cfg, err = config.Parse(data)
	} else {
		c.cfg, err = config.Load(c.env)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	c.logger, err = logpkg.NewLogger(c.env, c.cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	return nil
}
