// Package pageelements provides lazily resolved, cached handles to UI
// elements (PageElement) and to groups of them (PageElements), plus typed
// variants for common controls.
package pageelements

import (
	"github.com/devicelab-dev/pageobjects/pkg/core"
	"github.com/devicelab-dev/pageobjects/pkg/driver"
	"github.com/devicelab-dev/pageobjects/pkg/logger"
	"github.com/devicelab-dev/pageobjects/pkg/wrapper"
)

// PageElement is a single element identified by a locator, optionally
// searched under a parent (a driver.Element, a driver.Locator or another
// page element). The driver element is looked up on first use and cached
// until ResetWebElement or SetDriverWrapper.
type PageElement struct {
	Locator driver.Locator
	Parent  any

	wrapper    *wrapper.DriverWrapper
	webElement driver.Element
}

// NewPageElement creates a page element bound to the default driver
// wrapper, if one is registered.
func NewPageElement(by, value string, parent any) *PageElement {
	e := &PageElement{
		Locator: driver.NewLocator(by, value),
		Parent:  parent,
	}
	e.wrapper, _ = wrapper.Default()
	return e
}

// DriverWrapper returns the bound wrapper, falling back to the default one.
func (e *PageElement) DriverWrapper() (*wrapper.DriverWrapper, error) {
	if e.wrapper == nil {
		w, err := wrapper.Default()
		if err != nil {
			return nil, err
		}
		e.wrapper = w
	}
	return e.wrapper, nil
}

// SetDriverWrapper binds w (the default wrapper when nil) and drops the
// cached element.
func (e *PageElement) SetDriverWrapper(w *wrapper.DriverWrapper) error {
	resolved, err := wrapper.Resolve(w)
	if err != nil {
		return err
	}
	e.wrapper = resolved
	e.webElement = nil
	return nil
}

// WebElement returns the driver element, finding it on first use.
func (e *PageElement) WebElement() (driver.Element, error) {
	if e.webElement == nil {
		w, err := e.DriverWrapper()
		if err != nil {
			return nil, err
		}
		found, err := find(w, e.Locator, e.Parent)
		if err != nil {
			return nil, err
		}
		e.webElement = found
	}
	return e.webElement, nil
}

// SetWebElement attaches an already found driver element, skipping the lookup.
func (e *PageElement) SetWebElement(el driver.Element) {
	e.webElement = el
}

// ResetWebElement drops the cached driver element.
func (e *PageElement) ResetWebElement() {
	e.webElement = nil
}

// ResetWebElements is ResetWebElement; it lets page objects reset single
// elements and collections alike.
func (e *PageElement) ResetWebElements() {
	e.ResetWebElement()
}

// Click clicks the element.
func (e *PageElement) Click() error {
	el, err := e.WebElement()
	if err != nil {
		return err
	}
	return el.Click()
}

// Text returns the visible text of the element.
func (e *PageElement) Text() (string, error) {
	el, err := e.WebElement()
	if err != nil {
		return "", err
	}
	return el.Text()
}

// Attribute returns the value of an element attribute.
func (e *PageElement) Attribute(name string) (string, error) {
	el, err := e.WebElement()
	if err != nil {
		return "", err
	}
	return el.GetAttribute(name)
}

// IsVisible reports whether the element is displayed.
func (e *PageElement) IsVisible() (bool, error) {
	el, err := e.WebElement()
	if err != nil {
		return false, err
	}
	return el.IsDisplayed()
}

// IsEnabled reports whether the element is enabled.
func (e *PageElement) IsEnabled() (bool, error) {
	el, err := e.WebElement()
	if err != nil {
		return false, err
	}
	return el.IsEnabled()
}

func find(w *wrapper.DriverWrapper, loc driver.Locator, parent any) (driver.Element, error) {
	if parent != nil {
		scope, err := w.Utils.GetWebElement(parent)
		if err != nil {
			return nil, err
		}
		logger.Debug("Finding element %s under parent", loc)
		return scope.FindElement(loc.By, loc.Value)
	}
	if w.Driver == nil {
		return nil, core.ErrNoDriver
	}
	logger.Debug("Finding element %s", loc)
	return w.Driver.FindElement(loc.By, loc.Value)
}

func findAll(w *wrapper.DriverWrapper, loc driver.Locator, parent any) ([]driver.Element, error) {
	if parent != nil {
		scope, err := w.Utils.GetWebElement(parent)
		if err != nil {
			return nil, err
		}
		logger.Debug("Finding elements %s under parent", loc)
		return scope.FindElements(loc.By, loc.Value)
	}
	if w.Driver == nil {
		return nil, core.ErrNoDriver
	}
	logger.Debug("Finding elements %s", loc)
	return w.Driver.FindElements(loc.By, loc.Value)
}
