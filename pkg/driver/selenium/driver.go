// Package selenium implements driver.Driver on top of github.com/tebeka/selenium,
// for Selenium Grid / chromedriver / geckodriver sessions.
package selenium

import (
	"errors"
	"fmt"
	"time"

	"github.com/devicelab-dev/pageobjects/pkg/core"
	"github.com/devicelab-dev/pageobjects/pkg/driver"
	"github.com/devicelab-dev/pageobjects/pkg/logger"
	sel "github.com/tebeka/selenium"
)

// Driver adapts a selenium.WebDriver.
type Driver struct {
	wd sel.WebDriver
}

// NewRemote opens a session on a remote WebDriver endpoint, e.g.
// http://127.0.0.1:4444/wd/hub.
func NewRemote(serverURL string, capabilities map[string]interface{}) (*Driver, error) {
	caps := sel.Capabilities{}
	for k, v := range capabilities {
		caps[k] = v
	}

	wd, err := sel.NewRemote(caps, serverURL)
	if err != nil {
		return nil, core.ErrServerUnreachable.WithCause(err)
	}
	logger.Info("Selenium session created on %s", serverURL)

	return New(wd), nil
}

// New wraps an existing selenium.WebDriver.
func New(wd sel.WebDriver) *Driver {
	return &Driver{wd: wd}
}

// WebDriver returns the underlying selenium.WebDriver.
func (d *Driver) WebDriver() sel.WebDriver {
	return d.wd
}

// FindElement implements driver.Searcher.
func (d *Driver) FindElement(by, value string) (driver.Element, error) {
	we, err := d.wd.FindElement(by, value)
	if err != nil {
		return nil, notFound(by, value, err)
	}
	return &Element{we: we}, nil
}

// FindElements implements driver.Searcher.
func (d *Driver) FindElements(by, value string) ([]driver.Element, error) {
	wes, err := d.wd.FindElements(by, value)
	if err != nil {
		return nil, err
	}
	return wrap(wes), nil
}

// Quit implements driver.Driver.
func (d *Driver) Quit() error {
	return d.wd.Quit()
}

// Get implements driver.Navigator.
func (d *Driver) Get(url string) error {
	return d.wd.Get(url)
}

// PageSource implements driver.Sourcer.
func (d *Driver) PageSource() (string, error) {
	return d.wd.PageSource()
}

// SetImplicitWait implements driver.ImplicitWaiter.
func (d *Driver) SetImplicitWait(timeout time.Duration) error {
	return d.wd.SetImplicitWaitTimeout(timeout)
}

// Element adapts a selenium.WebElement.
type Element struct {
	we sel.WebElement
}

// WebElement returns the underlying selenium.WebElement.
func (e *Element) WebElement() sel.WebElement {
	return e.we
}

// FindElement implements driver.Searcher.
func (e *Element) FindElement(by, value string) (driver.Element, error) {
	we, err := e.we.FindElement(by, value)
	if err != nil {
		return nil, notFound(by, value, err)
	}
	return &Element{we: we}, nil
}

// FindElements implements driver.Searcher.
func (e *Element) FindElements(by, value string) ([]driver.Element, error) {
	wes, err := e.we.FindElements(by, value)
	if err != nil {
		return nil, err
	}
	return wrap(wes), nil
}

// Click implements driver.Element.
func (e *Element) Click() error { return e.we.Click() }

// Clear implements driver.Element.
func (e *Element) Clear() error { return e.we.Clear() }

// SendKeys implements driver.Element.
func (e *Element) SendKeys(text string) error { return e.we.SendKeys(text) }

// Text implements driver.Element.
func (e *Element) Text() (string, error) { return e.we.Text() }

// GetAttribute implements driver.Element.
func (e *Element) GetAttribute(name string) (string, error) { return e.we.GetAttribute(name) }

// IsDisplayed implements driver.Element.
func (e *Element) IsDisplayed() (bool, error) { return e.we.IsDisplayed() }

// IsEnabled implements driver.Element.
func (e *Element) IsEnabled() (bool, error) { return e.we.IsEnabled() }

// IsSelected implements driver.Element.
func (e *Element) IsSelected() (bool, error) { return e.we.IsSelected() }

func wrap(wes []sel.WebElement) []driver.Element {
	elems := make([]driver.Element, 0, len(wes))
	for _, we := range wes {
		elems = append(elems, &Element{we: we})
	}
	return elems
}

func notFound(by, value string, err error) error {
	var wdErr *sel.Error
	if errors.As(err, &wdErr) && wdErr.Err == "no such element" {
		return core.ErrElementNotFound.WithCause(err).WithDetails(map[string]interface{}{
			"locator": fmt.Sprintf("%s=%s", by, value),
		})
	}
	return err
}
