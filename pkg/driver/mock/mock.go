// Package mock provides an in-memory driver for testing without a real
// browser or device.
package mock

import (
	"fmt"

	"github.com/devicelab-dev/pageobjects/pkg/core"
	"github.com/devicelab-dev/pageobjects/pkg/driver"
)

// Node is one element of the mock element tree. A node matches a locator
// when Attrs[locator.By] equals locator.Value.
type Node struct {
	Attrs    map[string]string
	Text     string
	Value    string
	Children []*Node

	Hidden   bool
	Disabled bool
	Selected bool

	// Clicks counts Click calls on this node
	Clicks int
}

// NewNode creates a node matched by by=value with the given text.
func NewNode(by, value, text string, children ...*Node) *Node {
	return &Node{
		Attrs:    map[string]string{by: value},
		Text:     text,
		Children: children,
	}
}

// Add appends children and returns n.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Driver is a mock implementation of driver.Driver for testing.
type Driver struct {
	// Root of the element tree; its own attributes are never matched
	Root *Node

	// FindErr, when set, is returned by every find call
	FindErr error

	// Internal state
	findCalls int
	quit      bool
}

// New creates a new mock driver over the given top-level nodes.
func New(nodes ...*Node) *Driver {
	return &Driver{Root: &Node{Children: nodes}}
}

// FindCalls returns how many find operations were served, including
// element-scoped ones.
func (d *Driver) FindCalls() int {
	return d.findCalls
}

// Quitted reports whether Quit was called.
func (d *Driver) Quitted() bool {
	return d.quit
}

// FindElement implements driver.Searcher.
func (d *Driver) FindElement(by, value string) (driver.Element, error) {
	return d.findOne(d.Root, by, value)
}

// FindElements implements driver.Searcher.
func (d *Driver) FindElements(by, value string) ([]driver.Element, error) {
	return d.findAll(d.Root, by, value)
}

// Quit implements driver.Driver.
func (d *Driver) Quit() error {
	d.quit = true
	return nil
}

func (d *Driver) findOne(scope *Node, by, value string) (driver.Element, error) {
	all, err := d.findAll(scope, by, value)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, core.ErrElementNotFound.WithDetails(map[string]interface{}{
			"locator": fmt.Sprintf("%s=%s", by, value),
		})
	}
	return all[0], nil
}

func (d *Driver) findAll(scope *Node, by, value string) ([]driver.Element, error) {
	d.findCalls++
	if d.FindErr != nil {
		return nil, d.FindErr
	}

	found := []driver.Element{}
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, child := range n.Children {
			if child.Attrs[by] == value {
				found = append(found, &Element{driver: d, Node: child})
			}
			walk(child)
		}
	}
	walk(scope)
	return found, nil
}

// Element is a handle to a mock Node.
type Element struct {
	*Node
	driver *Driver
}

// FindElement implements driver.Searcher.
func (e *Element) FindElement(by, value string) (driver.Element, error) {
	return e.driver.findOne(e.Node, by, value)
}

// FindElements implements driver.Searcher.
func (e *Element) FindElements(by, value string) ([]driver.Element, error) {
	return e.driver.findAll(e.Node, by, value)
}

// Click implements driver.Element. Clicking a checkbox-like node toggles
// its selection.
func (e *Element) Click() error {
	e.Node.Clicks++
	if t := e.Node.Attrs["type"]; t == "checkbox" {
		e.Node.Selected = !e.Node.Selected
	} else if t == "radio" || e.Node.Attrs["tag name"] == "option" {
		e.Node.Selected = true
	}
	return nil
}

// Clear implements driver.Element.
func (e *Element) Clear() error {
	e.Node.Value = ""
	return nil
}

// SendKeys implements driver.Element.
func (e *Element) SendKeys(text string) error {
	e.Node.Value += text
	return nil
}

// Text implements driver.Element.
func (e *Element) Text() (string, error) {
	return e.Node.Text, nil
}

// GetAttribute implements driver.Element. "value" reads the typed value.
func (e *Element) GetAttribute(name string) (string, error) {
	if name == "value" {
		return e.Node.Value, nil
	}
	return e.Node.Attrs[name], nil
}

// IsDisplayed implements driver.Element.
func (e *Element) IsDisplayed() (bool, error) {
	return !e.Node.Hidden, nil
}

// IsEnabled implements driver.Element.
func (e *Element) IsEnabled() (bool, error) {
	return !e.Node.Disabled, nil
}

// IsSelected implements driver.Element.
func (e *Element) IsSelected() (bool, error) {
	return e.Node.Selected, nil
}
