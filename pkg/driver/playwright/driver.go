// Package playwright implements driver.Driver on a playwright-go Page.
// WebDriver locator strategies are translated to Playwright selectors.
package playwright

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/devicelab-dev/pageobjects/pkg/core"
	"github.com/devicelab-dev/pageobjects/pkg/driver"
	"github.com/devicelab-dev/pageobjects/pkg/logger"
	"github.com/playwright-community/playwright-go"
)

// Driver adapts a playwright.Page.
type Driver struct {
	page    playwright.Page
	browser playwright.Browser
	pw      *playwright.Playwright
}

// Launch starts Playwright, launches the named browser (chromium, firefox,
// webkit) and opens a blank page.
func Launch(browserName string, headless bool) (*Driver, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	var bt playwright.BrowserType
	switch browserName {
	case "firefox":
		bt = pw.Firefox
	case "webkit":
		bt = pw.WebKit
	case "", "chromium", "chrome":
		bt = pw.Chromium
	default:
		_ = pw.Stop()
		return nil, core.ErrInvalidConfig.WithMessage("unsupported playwright browser: " + browserName)
	}

	browser, err := bt.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", browserName, err)
	}

	page, err := browser.NewPage()
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	logger.Info("Playwright %s launched (headless=%v)", bt.Name(), headless)

	return &Driver{page: page, browser: browser, pw: pw}, nil
}

// New wraps an existing page. Quit only closes the page.
func New(page playwright.Page) *Driver {
	return &Driver{page: page}
}

// Page returns the underlying page.
func (d *Driver) Page() playwright.Page {
	return d.page
}

// FindElement implements driver.Searcher.
func (d *Driver) FindElement(by, value string) (driver.Element, error) {
	selector, err := Selector(by, value)
	if err != nil {
		return nil, err
	}
	h, err := d.page.QuerySelector(selector)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, notFound(by, value)
	}
	return &Element{handle: h}, nil
}

// FindElements implements driver.Searcher.
func (d *Driver) FindElements(by, value string) ([]driver.Element, error) {
	selector, err := Selector(by, value)
	if err != nil {
		return nil, err
	}
	hs, err := d.page.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	return wrap(hs), nil
}

// Get implements driver.Navigator.
func (d *Driver) Get(url string) error {
	_, err := d.page.Goto(url)
	return err
}

// PageSource implements driver.Sourcer.
func (d *Driver) PageSource() (string, error) {
	return d.page.Content()
}

// SetImplicitWait implements driver.ImplicitWaiter. Queries never wait, so
// the timeout applies to actions on found elements.
func (d *Driver) SetImplicitWait(timeout time.Duration) error {
	d.page.SetDefaultTimeout(float64(timeout.Milliseconds()))
	return nil
}

// Quit implements driver.Driver. The browser and Playwright are stopped
// even when closing the page fails; the first error is returned.
func (d *Driver) Quit() error {
	var errs []error
	if err := d.page.Close(); err != nil {
		errs = append(errs, err)
	}
	if d.browser != nil {
		if err := d.browser.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if d.pw != nil {
		if err := d.pw.Stop(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// Element adapts a playwright.ElementHandle.
type Element struct {
	handle playwright.ElementHandle
}

// Handle returns the underlying element handle.
func (e *Element) Handle() playwright.ElementHandle {
	return e.handle
}

// FindElement implements driver.Searcher.
func (e *Element) FindElement(by, value string) (driver.Element, error) {
	selector, err := Selector(by, value)
	if err != nil {
		return nil, err
	}
	h, err := e.handle.QuerySelector(selector)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, notFound(by, value)
	}
	return &Element{handle: h}, nil
}

// FindElements implements driver.Searcher.
func (e *Element) FindElements(by, value string) ([]driver.Element, error) {
	selector, err := Selector(by, value)
	if err != nil {
		return nil, err
	}
	hs, err := e.handle.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	return wrap(hs), nil
}

// Click implements driver.Element.
func (e *Element) Click() error { return e.handle.Click() }

// Clear implements driver.Element.
func (e *Element) Clear() error { return e.handle.Fill("") }

// SendKeys implements driver.Element.
func (e *Element) SendKeys(text string) error { return e.handle.Type(text) }

// Text implements driver.Element.
func (e *Element) Text() (string, error) { return e.handle.InnerText() }

// GetAttribute implements driver.Element. "value" reads the live input value.
func (e *Element) GetAttribute(name string) (string, error) {
	if name == "value" {
		return e.handle.InputValue()
	}
	return e.handle.GetAttribute(name)
}

// IsDisplayed implements driver.Element.
func (e *Element) IsDisplayed() (bool, error) { return e.handle.IsVisible() }

// IsEnabled implements driver.Element.
func (e *Element) IsEnabled() (bool, error) { return e.handle.IsEnabled() }

// IsSelected implements driver.Element.
func (e *Element) IsSelected() (bool, error) { return e.handle.IsChecked() }

// Selector translates a WebDriver locator into a Playwright selector.
func Selector(by, value string) (string, error) {
	q := strconv.Quote(value)
	switch by {
	case driver.ByCSSSelector:
		return "css=" + value, nil
	case driver.ByXPath:
		return "xpath=" + value, nil
	case driver.ByID:
		return "css=[id=" + q + "]", nil
	case driver.ByName:
		return "css=[name=" + q + "]", nil
	case driver.ByClassName:
		return "css=." + value, nil
	case driver.ByTagName:
		return "css=" + value, nil
	case driver.ByAccessibilityID:
		return "css=[aria-label=" + q + "]", nil
	case driver.ByLinkText:
		return "xpath=.//a[normalize-space(.)=" + xpathLiteral(value) + "]", nil
	case driver.ByPartialLinkText:
		return "xpath=.//a[contains(., " + xpathLiteral(value) + ")]", nil
	default:
		return "", core.ErrInvalidLocator.WithDetails(map[string]interface{}{"by": by})
	}
}

// xpathLiteral quotes v as an XPath 1.0 string literal, which has no escape
// sequences: values holding both quote kinds are built with concat().
func xpathLiteral(v string) string {
	if !strings.Contains(v, `"`) {
		return `"` + v + `"`
	}
	if !strings.Contains(v, "'") {
		return "'" + v + "'"
	}
	parts := strings.Split(v, `"`)
	quoted := make([]string, 0, 2*len(parts)-1)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `'"'`)
		}
		if p != "" {
			quoted = append(quoted, `"`+p+`"`)
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}

func wrap(hs []playwright.ElementHandle) []driver.Element {
	elems := make([]driver.Element, 0, len(hs))
	for _, h := range hs {
		elems = append(elems, &Element{handle: h})
	}
	return elems
}

func notFound(by, value string) error {
	return core.ErrElementNotFound.WithDetails(map[string]interface{}{
		"locator": fmt.Sprintf("%s=%s", by, value),
	})
}
