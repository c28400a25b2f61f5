package driver

import (
	"strings"

	"github.com/devicelab-dev/pageobjects/pkg/core"
	"github.com/tebeka/selenium"
	"gopkg.in/yaml.v3"
)

// Locator strategies. Web strategies follow the W3C WebDriver names.
const (
	ByID              = selenium.ByID
	ByXPath           = selenium.ByXPATH
	ByLinkText        = selenium.ByLinkText
	ByPartialLinkText = selenium.ByPartialLinkText
	ByName            = selenium.ByName
	ByTagName         = selenium.ByTagName
	ByClassName       = selenium.ByClassName
	ByCSSSelector     = selenium.ByCSSSelector
	ByAccessibilityID = "accessibility id"
)

// Locator selects zero or more elements.
type Locator struct {
	By    string `yaml:"by"`
	Value string `yaml:"value"`
}

// NewLocator returns a Locator for by/value.
func NewLocator(by, value string) Locator {
	return Locator{By: by, Value: value}
}

// ParseLocator parses the "<by>=<value>" shorthand, e.g. "id=submit" or
// "xpath=//li[@class='row']". Only the first '=' separates the parts.
func ParseLocator(s string) (Locator, error) {
	by, value, ok := strings.Cut(s, "=")
	by = strings.TrimSpace(by)
	if !ok || by == "" || value == "" {
		return Locator{}, core.ErrInvalidLocator.WithDetails(map[string]interface{}{"locator": s})
	}
	return Locator{By: by, Value: value}, nil
}

// IsEmpty returns true if the locator has no strategy or value.
func (l Locator) IsEmpty() bool {
	return l.By == "" || l.Value == ""
}

// String returns the "<by>=<value>" form.
func (l Locator) String() string {
	return l.By + "=" + l.Value
}

// UnmarshalYAML allows Locator to be unmarshaled from the shorthand string or a mapping.
func (l *Locator) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		parsed, err := ParseLocator(node.Value)
		if err != nil {
			return err
		}
		*l = parsed
		return nil
	}

	var raw struct {
		By    string `yaml:"by"`
		Value string `yaml:"value"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	l.By = raw.By
	l.Value = raw.Value
	return nil
}
