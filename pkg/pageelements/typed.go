package pageelements

import (
	"strings"

	"github.com/devicelab-dev/pageobjects/pkg/core"
	"github.com/devicelab-dev/pageobjects/pkg/driver"
)

// Button is a clickable element.
type Button struct {
	*PageElement
}

// NewButton creates a button.
func NewButton(by, value string, parent any) *Button {
	return &Button{PageElement: NewPageElement(by, value, parent)}
}

// Text is a read-only element whose text is of interest.
type Text struct {
	*PageElement
}

// NewText creates a text element.
func NewText(by, value string, parent any) *Text {
	return &Text{PageElement: NewPageElement(by, value, parent)}
}

// Link is an anchor element.
type Link struct {
	*PageElement
}

// NewLink creates a link.
func NewLink(by, value string, parent any) *Link {
	return &Link{PageElement: NewPageElement(by, value, parent)}
}

// Href returns the link target.
func (l *Link) Href() (string, error) {
	return l.Attribute("href")
}

// Checkbox is a toggleable input.
type Checkbox struct {
	*PageElement
}

// NewCheckbox creates a checkbox.
func NewCheckbox(by, value string, parent any) *Checkbox {
	return &Checkbox{PageElement: NewPageElement(by, value, parent)}
}

// IsSelected reports whether the checkbox is checked.
func (c *Checkbox) IsSelected() (bool, error) {
	el, err := c.WebElement()
	if err != nil {
		return false, err
	}
	return el.IsSelected()
}

// Check selects the checkbox if it is not selected yet.
func (c *Checkbox) Check() error {
	return c.toggleTo(true)
}

// Uncheck clears the checkbox if it is selected.
func (c *Checkbox) Uncheck() error {
	return c.toggleTo(false)
}

func (c *Checkbox) toggleTo(want bool) error {
	selected, err := c.IsSelected()
	if err != nil {
		return err
	}
	if selected == want {
		return nil
	}
	return c.Click()
}

// InputRadio is a radio button.
type InputRadio struct {
	*PageElement
}

// NewInputRadio creates a radio input.
func NewInputRadio(by, value string, parent any) *InputRadio {
	return &InputRadio{PageElement: NewPageElement(by, value, parent)}
}

// IsSelected reports whether the radio button is selected.
func (r *InputRadio) IsSelected() (bool, error) {
	el, err := r.WebElement()
	if err != nil {
		return false, err
	}
	return el.IsSelected()
}

// Check selects the radio button if it is not selected yet.
func (r *InputRadio) Check() error {
	selected, err := r.IsSelected()
	if err != nil || selected {
		return err
	}
	return r.Click()
}

// InputText is a text field.
type InputText struct {
	*PageElement
}

// NewInputText creates a text input.
func NewInputText(by, value string, parent any) *InputText {
	return &InputText{PageElement: NewPageElement(by, value, parent)}
}

// Text returns the current value of the field.
func (i *InputText) Text() (string, error) {
	return i.Attribute("value")
}

// SetText replaces the field value.
func (i *InputText) SetText(value string) error {
	el, err := i.WebElement()
	if err != nil {
		return err
	}
	if err := el.Clear(); err != nil {
		return err
	}
	return el.SendKeys(value)
}

// Clear empties the field.
func (i *InputText) Clear() error {
	el, err := i.WebElement()
	if err != nil {
		return err
	}
	return el.Clear()
}

// Select is a drop-down list of <option> elements.
type Select struct {
	*PageElement
}

// NewSelect creates a select box.
func NewSelect(by, value string, parent any) *Select {
	return &Select{PageElement: NewPageElement(by, value, parent)}
}

func (s *Select) options() ([]driver.Element, error) {
	el, err := s.WebElement()
	if err != nil {
		return nil, err
	}
	return el.FindElements(driver.ByTagName, "option")
}

// Options returns the visible text of every option.
func (s *Select) Options() ([]string, error) {
	opts, err := s.options()
	if err != nil {
		return nil, err
	}
	texts := make([]string, 0, len(opts))
	for _, o := range opts {
		text, err := o.Text()
		if err != nil {
			return nil, err
		}
		texts = append(texts, strings.TrimSpace(text))
	}
	return texts, nil
}

// SelectByText clicks the option whose visible text equals text.
func (s *Select) SelectByText(text string) error {
	opts, err := s.options()
	if err != nil {
		return err
	}
	for _, o := range opts {
		t, err := o.Text()
		if err != nil {
			return err
		}
		if strings.TrimSpace(t) == text {
			return o.Click()
		}
	}
	return core.ErrElementNotFound.WithDetails(map[string]interface{}{
		"option": text,
		"select": s.Locator.String(),
	})
}

// SelectedText returns the text of the first selected option, or "" when
// nothing is selected.
func (s *Select) SelectedText() (string, error) {
	opts, err := s.options()
	if err != nil {
		return "", err
	}
	for _, o := range opts {
		selected, err := o.IsSelected()
		if err != nil {
			return "", err
		}
		if selected {
			text, err := o.Text()
			return strings.TrimSpace(text), err
		}
	}
	return "", nil
}
