// Package driver defines the automation-driver capabilities page elements
// are built on: finding elements globally or under another element.
package driver

import "time"

// Searcher finds elements within a scope: the whole page/screen for a
// Driver, the element's subtree for an Element.
type Searcher interface {
	// FindElement returns the first match or an error when there is none
	FindElement(by, value string) (Element, error)

	// FindElements returns every match. No match is an empty slice, not an error.
	FindElements(by, value string) ([]Element, error)
}

// Driver is a live automation session (Appium, Selenium, Playwright).
type Driver interface {
	Searcher

	// Quit ends the session
	Quit() error
}

// Element is a single element handle returned by a Searcher.
type Element interface {
	Searcher

	Click() error
	Clear() error
	SendKeys(text string) error
	Text() (string, error)
	GetAttribute(name string) (string, error)
	IsDisplayed() (bool, error)
	IsEnabled() (bool, error)
	IsSelected() (bool, error)
}

// Navigator is implemented by drivers that can open a URL.
type Navigator interface {
	Get(url string) error
}

// Sourcer is implemented by drivers that can dump the current page or
// screen source (HTML for browsers, XML hierarchy for Appium).
type Sourcer interface {
	PageSource() (string, error)
}

// ImplicitWaiter is implemented by drivers whose element lookups can wait
// for elements to appear.
type ImplicitWaiter interface {
	SetImplicitWait(timeout time.Duration) error
}
