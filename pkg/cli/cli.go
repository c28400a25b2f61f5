// Package cli provides the command-line interface for pageobjects.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/pageobjects/pkg/config"
	"github.com/devicelab-dev/pageobjects/pkg/logger"
)

// Version is set at build time.
var Version = "dev"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Configuration file (default: config.yaml or config.yml in the working directory)",
		EnvVars: []string{"PAGEOBJECTS_CONFIG"},
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Usage:   "Enable verbose logging",
		EnvVars: []string{"PAGEOBJECTS_VERBOSE"},
	},
	&cli.StringFlag{
		Name:    "log-file",
		Usage:   "Write logs to this file instead of stderr; a bare name is created under <home>/logs",
		EnvVars: []string{"PAGEOBJECTS_LOG_FILE"},
	},
}

// NewApp builds the CLI application.
func NewApp() *cli.App {
	return &cli.App{
		Name:    "pageobjects",
		Usage:   "Page object tooling for Appium, Selenium and Playwright",
		Version: Version,
		Description: `Locate elements through page element collections against a live
driver session and report test case statuses to Jira.

Examples:
  pageobjects report --test-id QA-1 --status Pass
  pageobjects locate --by "css selector" --value "ul > li"
  pageobjects --config android.yaml locate --driver appium --by id --value login
  pageobjects source --driver selenium --open https://example.com`,
		Flags: GlobalFlags,
		Commands: []*cli.Command{
			reportCommand,
			locateCommand,
			sourceCommand,
		},
		Before: setupLogging,
		After: func(*cli.Context) error {
			logger.Close()
			return nil
		},
	}
}

// Execute runs the CLI.
func Execute() {
	if err := NewApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging(c *cli.Context) error {
	if path := c.String("log-file"); path != "" {
		if filepath.Base(path) == path {
			if err := os.MkdirAll(config.GetLogsDir(), 0o755); err != nil {
				return fmt.Errorf("failed to create logs directory: %w", err)
			}
			path = filepath.Join(config.GetLogsDir(), path)
		}
		if err := logger.Init(path); err != nil {
			return err
		}
	} else if c.Bool("verbose") {
		logger.SetOutput(c.App.ErrWriter)
	}
	if c.Bool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	}
	return nil
}

// loadConfig reads --config, or else the first config file found in the
// working directory or the pageobjects home, after loading .env. It then
// applies PAGEOBJECTS_* overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if err := config.LoadDotEnv("."); err != nil {
		return nil, err
	}

	path := c.String("config")
	if path == "" {
		path, _ = config.Find(".", config.GetHome())
	}
	cfg := config.New()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		logger.Debug("Loaded config from %s", path)
	}

	cfg.ApplyEnv(config.EnvPrefix)
	return cfg, nil
}
