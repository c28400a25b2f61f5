package cli

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/pageobjects/pkg/config"
	"github.com/devicelab-dev/pageobjects/pkg/core"
	"github.com/devicelab-dev/pageobjects/pkg/driver"
	"github.com/devicelab-dev/pageobjects/pkg/driver/appium"
	"github.com/devicelab-dev/pageobjects/pkg/driver/playwright"
	"github.com/devicelab-dev/pageobjects/pkg/driver/selenium"
	"github.com/devicelab-dev/pageobjects/pkg/logger"
	"github.com/devicelab-dev/pageobjects/pkg/pageelements"
	"github.com/devicelab-dev/pageobjects/pkg/wrapper"
)

// Default server URLs per driver type.
const (
	defaultAppiumURL   = "http://127.0.0.1:4723"
	defaultSeleniumURL = "http://127.0.0.1:4444/wd/hub"
)

// sessionFlags select and configure the driver; unset flags fall back to
// the Driver section of the configuration.
var sessionFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "driver",
		Aliases: []string{"d"},
		Usage:   "Driver to use (appium, selenium, playwright)",
	},
	&cli.StringFlag{
		Name:  "url",
		Usage: "Appium or Selenium server URL",
	},
	&cli.StringFlag{
		Name:  "browser",
		Usage: "Playwright browser (chromium, firefox, webkit)",
	},
	&cli.BoolFlag{
		Name:  "headed",
		Usage: "Show the Playwright browser window",
	},
	&cli.StringFlag{
		Name:  "open",
		Usage: "URL to open before locating",
	},
	&cli.DurationFlag{
		Name:  "implicit-wait",
		Usage: "How long lookups wait for elements to appear",
	},
}

var locateCommand = &cli.Command{
	Name:  "locate",
	Usage: "Find every element matching a locator and print its text",
	Description: `Open a driver session from the Driver and Capabilities sections of the
configuration, resolve the locator through a page element collection and
print the number of matches and the text of each one.

Examples:
  pageobjects locate --by id --value login
  pageobjects locate --locator "xpath=//li" --parent "id=menu"
  pageobjects locate --driver playwright --open https://example.com --by "css selector" --value a`,
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:  "by",
			Usage: "Locator strategy (id, xpath, css selector, name, accessibility id, ...)",
		},
		&cli.StringFlag{
			Name:  "value",
			Usage: "Locator value",
		},
		&cli.StringFlag{
			Name:  "locator",
			Usage: "Locator as by=value, instead of --by and --value",
		},
		&cli.StringFlag{
			Name:  "parent",
			Usage: "Parent locator as by=value; matches are searched under it",
		},
	}, sessionFlags...),
	Action: runLocate,
}

var sourceCommand = &cli.Command{
	Name:  "source",
	Usage: "Print the page source or view hierarchy of a driver session",
	Description: `Examples:
  pageobjects source --driver appium
  pageobjects source --driver selenium --open https://example.com`,
	Flags:  sessionFlags,
	Action: runSource,
}

// newDriver opens a driver session. It is a variable so tests can swap in a
// fake session.
var newDriver = createDriver

func runLocate(c *cli.Context) error {
	loc, err := locatorFromFlags(c)
	if err != nil {
		return err
	}

	var parent any
	if p := c.String("parent"); p != "" {
		parentLoc, err := driver.ParseLocator(p)
		if err != nil {
			return err
		}
		parent = parentLoc
	}

	w, cleanup, err := openSession(c)
	if err != nil {
		return err
	}
	defer cleanup()

	texts := pageelements.NewTexts(loc.By, loc.Value, parent)
	if err := texts.SetDriverWrapper(w); err != nil {
		return err
	}
	elems, err := texts.PageElements()
	if err != nil {
		return err
	}

	out := c.App.Writer
	fmt.Fprintf(out, "%d elements match %s\n", len(elems), loc)
	for i, e := range elems {
		text, err := e.Text()
		if err != nil {
			return fmt.Errorf("element %d: %w", i+1, err)
		}
		fmt.Fprintf(out, "  %d: %s\n", i+1, strings.TrimSpace(text))
	}
	return nil
}

func runSource(c *cli.Context) error {
	w, cleanup, err := openSession(c)
	if err != nil {
		return err
	}
	defer cleanup()

	s, ok := w.Driver.(driver.Sourcer)
	if !ok {
		return fmt.Errorf("driver %T cannot dump its source", w.Driver)
	}
	src, err := s.PageSource()
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, src)
	return nil
}

func locatorFromFlags(c *cli.Context) (driver.Locator, error) {
	if l := c.String("locator"); l != "" {
		return driver.ParseLocator(l)
	}
	by, value := c.String("by"), c.String("value")
	if by == "" || value == "" {
		return driver.Locator{}, core.ErrMissingRequired.WithMessage("--by and --value (or --locator) are required")
	}
	return driver.NewLocator(by, value), nil
}

// openSession loads the configuration, creates the driver, registers its
// wrapper as the default one and returns a cleanup that quits the driver.
func openSession(c *cli.Context) (*wrapper.DriverWrapper, func(), error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	applySessionFlags(c, cfg)

	d, err := newDriver(cfg)
	if err != nil {
		return nil, nil, err
	}

	if timeout, ok := cfg.GetDurationOptional(config.SectionDriver, "implicitwait"); ok {
		if iw, ok := d.(driver.ImplicitWaiter); ok {
			if err := iw.SetImplicitWait(timeout); err != nil {
				logger.Warn("Failed to set implicit wait: %v", err)
			}
		}
	}
	if url, ok := cfg.GetOptional(config.SectionDriver, "open"); ok && url != "" {
		nav, ok := d.(driver.Navigator)
		if !ok {
			_ = d.Quit()
			return nil, nil, fmt.Errorf("driver %T cannot open URLs", d)
		}
		if err := nav.Get(url); err != nil {
			_ = d.Quit()
			return nil, nil, fmt.Errorf("failed to open %s: %w", url, err)
		}
	}

	w := wrapper.New(d, cfg)
	pool := wrapper.DefaultPool()
	pool.Register(w)

	cleanup := func() {
		if err := pool.QuitAll(); err != nil {
			logger.Warn("Failed to quit driver: %v", err)
		}
	}
	return w, cleanup, nil
}

// applySessionFlags writes the session flags that were set into the Driver
// section, so flags and configuration are read the same way.
func applySessionFlags(c *cli.Context, cfg *config.Config) {
	for flag, key := range map[string]string{
		"driver":  "type",
		"url":     "url",
		"browser": "browser",
		"open":    "open",
	} {
		if c.IsSet(flag) {
			cfg.Set(config.SectionDriver, key, c.String(flag))
		}
	}
	if c.IsSet("headed") {
		cfg.Set(config.SectionDriver, "headless", !c.Bool("headed"))
	}
	if c.IsSet("implicit-wait") {
		cfg.Set(config.SectionDriver, "implicitwait", c.Duration("implicit-wait").String())
	}
}

// createDriver opens a session of the type named in the Driver section.
// Capabilities are sent as written in the Capabilities section.
func createDriver(cfg *config.Config) (driver.Driver, error) {
	caps := cfg.Section(config.SectionCapabilities)
	driverType := strings.ToLower(cfg.Get(config.SectionDriver, "type", "appium"))

	switch driverType {
	case "appium":
		url := cfg.Get(config.SectionDriver, "url", defaultAppiumURL)
		logger.Info("Creating Appium session on %s with capabilities: %v", url, caps)
		d, err := appium.NewDriver(url, caps)
		if err != nil {
			return nil, err
		}
		return d, nil

	case "selenium":
		url := cfg.Get(config.SectionDriver, "url", defaultSeleniumURL)
		if _, ok := caps["browserName"]; !ok {
			caps["browserName"] = cfg.Get(config.SectionDriver, "browser", "chrome")
		}
		logger.Info("Creating Selenium session on %s with capabilities: %v", url, caps)
		d, err := selenium.NewRemote(url, caps)
		if err != nil {
			return nil, err
		}
		return d, nil

	case "playwright":
		headless := true
		if _, ok := cfg.GetOptional(config.SectionDriver, "headless"); ok {
			headless = cfg.GetBoolOptional(config.SectionDriver, "headless")
		}
		browser := cfg.Get(config.SectionDriver, "browser", "chromium")
		logger.Info("Launching Playwright %s (headless=%v)", browser, headless)
		d, err := playwright.Launch(browser, headless)
		if err != nil {
			return nil, err
		}
		return d, nil

	default:
		return nil, core.ErrInvalidConfig.WithMessage(fmt.Sprintf("unsupported driver type: %s", driverType))
	}
}
