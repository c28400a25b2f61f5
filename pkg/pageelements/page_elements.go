package pageelements

import (
	"github.com/devicelab-dev/pageobjects/pkg/driver"
	"github.com/devicelab-dev/pageobjects/pkg/wrapper"
)

// Bindable is a page element type a collection can build for each match.
type Bindable interface {
	SetDriverWrapper(w *wrapper.DriverWrapper) error
	SetWebElement(el driver.Element)
}

// PageElements is every element matching a locator, optionally searched
// under a parent. Both the driver elements and the typed page elements built
// from them are cached until ResetWebElements or SetDriverWrapper.
type PageElements[T Bindable] struct {
	Locator driver.Locator
	Parent  any

	newElement func(by, value string, parent any) T
	wrapper    *wrapper.DriverWrapper

	webElements  []driver.Element
	pageElements []T
	webLoaded    bool
	pageLoaded   bool
}

// NewPageElements creates a collection whose matches are wrapped with
// newElement. It is bound to the default driver wrapper, if one is registered.
func NewPageElements[T Bindable](by, value string, parent any, newElement func(by, value string, parent any) T) *PageElements[T] {
	c := &PageElements[T]{
		Locator:    driver.NewLocator(by, value),
		Parent:     parent,
		newElement: newElement,
	}
	c.wrapper, _ = wrapper.Default()
	return c
}

// DriverWrapper returns the bound wrapper, falling back to the default one.
func (c *PageElements[T]) DriverWrapper() (*wrapper.DriverWrapper, error) {
	if c.wrapper == nil {
		w, err := wrapper.Default()
		if err != nil {
			return nil, err
		}
		c.wrapper = w
	}
	return c.wrapper, nil
}

// SetDriverWrapper binds w (the default wrapper when nil) and drops both caches.
func (c *PageElements[T]) SetDriverWrapper(w *wrapper.DriverWrapper) error {
	resolved, err := wrapper.Resolve(w)
	if err != nil {
		return err
	}
	c.wrapper = resolved
	c.ResetWebElements()
	return nil
}

// WebElements returns the driver elements matching the locator, finding
// them on first use. No match is an empty slice and is cached as well.
func (c *PageElements[T]) WebElements() ([]driver.Element, error) {
	if !c.webLoaded {
		w, err := c.DriverWrapper()
		if err != nil {
			return nil, err
		}
		found, err := findAll(w, c.Locator, c.Parent)
		if err != nil {
			return nil, err
		}
		c.webElements = found
		c.webLoaded = true
	}
	return c.webElements, nil
}

// PageElements returns one typed element per match. Each is built with the
// collection's locator and parent, bound to the collection's wrapper and
// attached to its driver element, so it never looks itself up.
func (c *PageElements[T]) PageElements() ([]T, error) {
	if !c.pageLoaded {
		webElements, err := c.WebElements()
		if err != nil {
			return nil, err
		}
		pageElements := make([]T, 0, len(webElements))
		for _, we := range webElements {
			pe := c.newElement(c.Locator.By, c.Locator.Value, c.Parent)
			if err := pe.SetDriverWrapper(c.wrapper); err != nil {
				return nil, err
			}
			pe.SetWebElement(we)
			pageElements = append(pageElements, pe)
		}
		c.pageElements = pageElements
		c.pageLoaded = true
	}
	return c.pageElements, nil
}

// Len returns the number of matches.
func (c *PageElements[T]) Len() (int, error) {
	webElements, err := c.WebElements()
	if err != nil {
		return 0, err
	}
	return len(webElements), nil
}

// ResetWebElements drops the driver elements and the typed elements built
// from them, so the next access queries the driver again.
func (c *PageElements[T]) ResetWebElements() {
	c.webElements = nil
	c.webLoaded = false
	c.pageElements = nil
	c.pageLoaded = false
}

// Typed collections.
type (
	Elements    = PageElements[*PageElement]
	Buttons     = PageElements[*Button]
	Checkboxes  = PageElements[*Checkbox]
	InputRadios = PageElements[*InputRadio]
	InputTexts  = PageElements[*InputText]
	Links       = PageElements[*Link]
	Selects     = PageElements[*Select]
	Texts       = PageElements[*Text]
)

// NewElements creates a collection of generic page elements.
func NewElements(by, value string, parent any) *Elements {
	return NewPageElements(by, value, parent, NewPageElement)
}

// NewButtons creates a collection of buttons.
func NewButtons(by, value string, parent any) *Buttons {
	return NewPageElements(by, value, parent, NewButton)
}

// NewCheckboxes creates a collection of checkboxes.
func NewCheckboxes(by, value string, parent any) *Checkboxes {
	return NewPageElements(by, value, parent, NewCheckbox)
}

// NewInputRadios creates a collection of radio inputs.
func NewInputRadios(by, value string, parent any) *InputRadios {
	return NewPageElements(by, value, parent, NewInputRadio)
}

// NewInputTexts creates a collection of text inputs.
func NewInputTexts(by, value string, parent any) *InputTexts {
	return NewPageElements(by, value, parent, NewInputText)
}

// NewLinks creates a collection of links.
func NewLinks(by, value string, parent any) *Links {
	return NewPageElements(by, value, parent, NewLink)
}

// NewSelects creates a collection of select boxes.
func NewSelects(by, value string, parent any) *Selects {
	return NewPageElements(by, value, parent, NewSelect)
}

// NewTexts creates a collection of text elements.
func NewTexts(by, value string, parent any) *Texts {
	return NewPageElements(by, value, parent, NewText)
}
