// Package pageobject models a web page or an application screen as a set of
// page elements, element collections and nested page objects that share one
// driver wrapper.
package pageobject

import (
	"reflect"

	"github.com/devicelab-dev/pageobjects/pkg/config"
	"github.com/devicelab-dev/pageobjects/pkg/driver"
	"github.com/devicelab-dev/pageobjects/pkg/logger"
	"github.com/devicelab-dev/pageobjects/pkg/wrapper"
)

// Child is anything a page object owns: a page element, a collection or a
// nested page object.
type Child interface {
	SetDriverWrapper(w *wrapper.DriverWrapper) error
	ResetWebElements()
}

// Initializer is implemented by page types that build their elements in a
// hook. InitPageElements runs once, during Setup, after the wrapper is bound.
type Initializer interface {
	InitPageElements()
}

// Declarer is implemented by page types whose elements are shared by every
// instance of the type, typically package-level variables.
type Declarer interface {
	DeclaredElements() []Child
}

// nested is satisfied by every type embedding PageObject.
type nested interface {
	pageObject() *PageObject
}

// PageObject is embedded in concrete page types:
//
//	type LoginPage struct {
//		pageobject.PageObject
//		Username *pageelements.InputText
//	}
//
//	func NewLoginPage(w *wrapper.DriverWrapper) (*LoginPage, error) {
//		p := &LoginPage{}
//		return p, p.Setup(p, w)
//	}
//
// Elements are registered with Register, usually from InitPageElements.
// A nested page registered as a child is set up on first propagation, so its
// own hook runs then.
type PageObject struct {
	wrapper  *wrapper.DriverWrapper
	owner    any
	children []Child
}

// Setup binds w (the default wrapper when nil), runs the owner's
// InitPageElements hook and passes the wrapper down to every child.
// owner is the concrete page embedding p.
func (p *PageObject) Setup(owner any, w *wrapper.DriverWrapper) error {
	p.owner = owner
	if err := p.bind(w); err != nil {
		return err
	}
	if i, ok := owner.(Initializer); ok {
		i.InitPageElements()
	}
	return p.propagate()
}

// Register adds children in order. Registering the same child twice has no
// extra effect.
func (p *PageObject) Register(children ...Child) {
	p.children = append(p.children, children...)
}

// Children returns the registered children followed by the ones declared by
// the owner's type, without duplicates.
func (p *PageObject) Children() []Child {
	all := append([]Child(nil), p.children...)
	if d, ok := p.owner.(Declarer); ok {
		all = append(all, d.DeclaredElements()...)
	}

	seen := make(map[Child]bool, len(all))
	out := make([]Child, 0, len(all))
	for _, c := range all {
		if c == nil || p.isOwner(c) {
			continue
		}
		if reflect.TypeOf(c).Comparable() {
			if seen[c] {
				continue
			}
			seen[c] = true
		}
		out = append(out, c)
	}
	return out
}

// SetDriverWrapper binds w (the default wrapper when nil) to the page and to
// every child, recursively through nested page objects.
func (p *PageObject) SetDriverWrapper(w *wrapper.DriverWrapper) error {
	if err := p.bind(w); err != nil {
		return err
	}
	return p.propagate()
}

// ResetWebElements drops the cached driver elements of every child at every
// nesting depth. The next access looks them up again.
func (p *PageObject) ResetWebElements() {
	for _, c := range p.Children() {
		c.ResetWebElements()
	}
}

// DriverWrapper returns the bound wrapper, nil before Setup.
func (p *PageObject) DriverWrapper() *wrapper.DriverWrapper {
	return p.wrapper
}

// Driver returns the driver of the bound wrapper.
func (p *PageObject) Driver() driver.Driver {
	if p.wrapper == nil {
		return nil
	}
	return p.wrapper.Driver
}

// Config returns the configuration of the bound wrapper.
func (p *PageObject) Config() *config.Config {
	if p.wrapper == nil {
		return nil
	}
	return p.wrapper.Config
}

// Utils returns the utilities of the bound wrapper.
func (p *PageObject) Utils() *wrapper.Utils {
	if p.wrapper == nil {
		return nil
	}
	return p.wrapper.Utils
}

func (p *PageObject) pageObject() *PageObject {
	return p
}

func (p *PageObject) bind(w *wrapper.DriverWrapper) error {
	resolved, err := wrapper.Resolve(w)
	if err != nil {
		return err
	}
	p.wrapper = resolved
	return nil
}

func (p *PageObject) propagate() error {
	children := p.Children()
	logger.Debug("Binding driver wrapper to %d elements of %T", len(children), p.ownerOrSelf())
	for _, c := range children {
		if n, ok := c.(nested); ok && n.pageObject().owner == nil {
			if err := n.pageObject().Setup(c, p.wrapper); err != nil {
				return err
			}
			continue
		}
		if err := c.SetDriverWrapper(p.wrapper); err != nil {
			return err
		}
	}
	return nil
}

func (p *PageObject) ownerOrSelf() any {
	if p.owner != nil {
		return p.owner
	}
	return p
}

func (p *PageObject) isOwner(c Child) bool {
	if any(c) == any(p) {
		return true
	}
	if p.owner == nil || !reflect.TypeOf(c).Comparable() || !reflect.TypeOf(p.owner).Comparable() {
		return false
	}
	return any(c) == p.owner
}
