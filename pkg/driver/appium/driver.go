package appium

import (
	"errors"
	"fmt"
	"time"

	"github.com/devicelab-dev/pageobjects/pkg/core"
	"github.com/devicelab-dev/pageobjects/pkg/driver"
	"github.com/devicelab-dev/pageobjects/pkg/logger"
)

// Driver implements driver.Driver using Appium server.
type Driver struct {
	client *Client
}

// NewDriver creates a session on the Appium server and returns a driver for it.
func NewDriver(serverURL string, capabilities map[string]interface{}) (*Driver, error) {
	client := NewClient(serverURL)

	if err := client.Connect(capabilities); err != nil {
		return nil, core.ErrServerUnreachable.WithCause(err)
	}
	logger.Info("Appium session %s created on %s (platform=%s)", client.SessionID(), serverURL, client.Platform())

	return NewDriverFromClient(client), nil
}

// NewDriverFromClient wraps an already connected client.
func NewDriverFromClient(client *Client) *Driver {
	return &Driver{client: client}
}

// Client returns the underlying HTTP client.
func (d *Driver) Client() *Client {
	return d.client
}

// FindElement implements driver.Searcher.
func (d *Driver) FindElement(by, value string) (driver.Element, error) {
	id, err := d.client.FindElement(by, value)
	if err != nil {
		return nil, notFound(by, value, err)
	}
	return &Element{client: d.client, id: id}, nil
}

// FindElements implements driver.Searcher.
func (d *Driver) FindElements(by, value string) ([]driver.Element, error) {
	ids, err := d.client.FindElements(by, value)
	if err != nil {
		return nil, err
	}
	return d.wrap(ids), nil
}

// Quit implements driver.Driver.
func (d *Driver) Quit() error {
	return d.client.Disconnect()
}

// Get implements driver.Navigator.
func (d *Driver) Get(url string) error {
	return d.client.Navigate(url)
}

// PageSource implements driver.Sourcer.
func (d *Driver) PageSource() (string, error) {
	return d.client.Source()
}

// SetImplicitWait implements driver.ImplicitWaiter.
func (d *Driver) SetImplicitWait(timeout time.Duration) error {
	return d.client.SetImplicitWait(timeout)
}

func (d *Driver) wrap(ids []string) []driver.Element {
	elems := make([]driver.Element, 0, len(ids))
	for _, id := range ids {
		elems = append(elems, &Element{client: d.client, id: id})
	}
	return elems
}

// Element is a W3C element reference.
type Element struct {
	client *Client
	id     string
}

// ID returns the W3C element ID.
func (e *Element) ID() string {
	return e.id
}

// FindElement implements driver.Searcher.
func (e *Element) FindElement(by, value string) (driver.Element, error) {
	id, err := e.client.FindElementFrom(e.id, by, value)
	if err != nil {
		return nil, notFound(by, value, err)
	}
	return &Element{client: e.client, id: id}, nil
}

// FindElements implements driver.Searcher.
func (e *Element) FindElements(by, value string) ([]driver.Element, error) {
	ids, err := e.client.FindElementsFrom(e.id, by, value)
	if err != nil {
		return nil, err
	}
	elems := make([]driver.Element, 0, len(ids))
	for _, id := range ids {
		elems = append(elems, &Element{client: e.client, id: id})
	}
	return elems, nil
}

// Click implements driver.Element.
func (e *Element) Click() error { return e.client.ClickElement(e.id) }

// Clear implements driver.Element.
func (e *Element) Clear() error { return e.client.ClearElement(e.id) }

// SendKeys implements driver.Element.
func (e *Element) SendKeys(text string) error { return e.client.SendKeysToElement(e.id, text) }

// Text implements driver.Element.
func (e *Element) Text() (string, error) { return e.client.GetElementText(e.id) }

// GetAttribute implements driver.Element.
func (e *Element) GetAttribute(name string) (string, error) {
	return e.client.GetElementAttribute(e.id, name)
}

// IsDisplayed implements driver.Element.
func (e *Element) IsDisplayed() (bool, error) { return e.client.IsElementDisplayed(e.id) }

// IsEnabled implements driver.Element.
func (e *Element) IsEnabled() (bool, error) { return e.client.IsElementEnabled(e.id) }

// IsSelected implements driver.Element.
func (e *Element) IsSelected() (bool, error) { return e.client.IsElementSelected(e.id) }

func notFound(by, value string, err error) error {
	var wdErr *WebDriverError
	if errors.As(err, &wdErr) && wdErr.IsNoSuchElement() {
		return core.ErrElementNotFound.WithCause(err).WithDetails(map[string]interface{}{
			"locator": fmt.Sprintf("%s=%s", by, value),
		})
	}
	return err
}
