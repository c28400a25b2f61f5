package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/pageobjects/pkg/config"
	"github.com/devicelab-dev/pageobjects/pkg/core"
	"github.com/devicelab-dev/pageobjects/pkg/jira"
)

var reportCommand = &cli.Command{
	Name:  "report",
	Usage: "Report a test case status to the Jira test-case-execution service",
	Description: `Send one status update. Optional values default to the Jira section
of the configuration (labels, comments, fixversion, build, onlyifchanges,
url, timeout). The Jira enabled option is not checked: the command always
sends.

Examples:
  pageobjects report --test-id QA-1 --status Pass
  pageobjects report --test-id QA-2 --status Fail --labels "smoke ui" --build 231`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "test-id",
			Usage:    "Jira test case key",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "status",
			Usage:    "Test status (Pass or Fail)",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "labels",
			Usage: "Execution labels",
		},
		&cli.StringFlag{
			Name:  "comments",
			Usage: "Execution comments",
		},
		&cli.StringFlag{
			Name:  "fix-version",
			Usage: "Fix version",
		},
		&cli.StringFlag{
			Name:  "build",
			Usage: "Build identifier",
		},
		&cli.BoolFlag{
			Name:  "only-if-changed",
			Usage: "Only update Jira when the status changes",
		},
		&cli.StringFlag{
			Name:  "url",
			Usage: "Test-case-execution endpoint",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Request timeout",
		},
	},
	Action: runReport,
}

func runReport(c *cli.Context) error {
	testID := c.String("test-id")
	status, ok := core.ParseTestStatus(c.String("status"))
	if !ok {
		return fmt.Errorf("invalid --status %q (expected Pass or Fail)", c.String("status"))
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	var opts []jira.Option
	if c.IsSet("url") {
		opts = append(opts, jira.WithBaseURL(c.String("url")))
	}
	if c.IsSet("timeout") {
		opts = append(opts, jira.WithTimeout(c.Duration("timeout")))
	}
	reporter := jira.NewReporter(cfg, opts...)

	options := jira.Options{
		Labels:        flagOrConfig(c, cfg, "labels", "labels"),
		Comments:      flagOrConfig(c, cfg, "comments", "comments"),
		FixVersion:    flagOrConfig(c, cfg, "fix-version", "fixversion"),
		Build:         flagOrConfig(c, cfg, "build", "build"),
		OnlyIfChanged: cfg.GetBoolOptional(config.SectionJira, "onlyifchanges"),
	}
	if c.IsSet("only-if-changed") {
		options.OnlyIfChanged = c.Bool("only-if-changed")
	}

	reporter.Report(c.Context, testID, status, options)
	// Report logs delivery failures instead of returning them.
	fmt.Fprintf(c.App.Writer, "Sent status update for %s (%s) to %s; delivery errors are logged\n", testID, status, reporter.BaseURL)
	return nil
}

// flagOrConfig returns the flag when set, else the Jira option key.
func flagOrConfig(c *cli.Context, cfg *config.Config, flag, key string) string {
	if c.IsSet(flag) {
		return c.String(flag)
	}
	v, _ := cfg.GetOptional(config.SectionJira, key)
	return v
}
