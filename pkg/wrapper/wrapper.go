// Package wrapper bundles a live driver with its configuration and helper
// utilities, and keeps a pool of them so page objects can fall back to a
// default one.
package wrapper

import (
	"sync"

	"github.com/devicelab-dev/pageobjects/pkg/config"
	"github.com/devicelab-dev/pageobjects/pkg/core"
	"github.com/devicelab-dev/pageobjects/pkg/driver"
)

// DriverWrapper is the context shared by every element and page object
// bound to one driver session.
type DriverWrapper struct {
	Driver driver.Driver
	Config *config.Config
	Utils  *Utils
}

// New creates a wrapper. A nil config is replaced by an empty one.
func New(d driver.Driver, cfg *config.Config) *DriverWrapper {
	if cfg == nil {
		cfg = config.New()
	}
	w := &DriverWrapper{Driver: d, Config: cfg}
	w.Utils = &Utils{wrapper: w}
	return w
}

// Pool is a registry of driver wrappers. The first registered wrapper is
// the default one.
type Pool struct {
	mu       sync.Mutex
	wrappers []*DriverWrapper
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{}
}

// Register adds w to the pool.
func (p *Pool) Register(w *DriverWrapper) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.wrappers = append(p.wrappers, w)
}

// Default returns the first registered wrapper.
func (p *Pool) Default() (*DriverWrapper, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.wrappers) == 0 {
		return nil, core.ErrNoDriverWrapper
	}
	return p.wrappers[0], nil
}

// Wrappers returns a copy of the registered wrappers.
func (p *Pool) Wrappers() []*DriverWrapper {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]*DriverWrapper(nil), p.wrappers...)
}

// Reset removes every wrapper without quitting their drivers.
func (p *Pool) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.wrappers = nil
}

// QuitAll quits every driver in the pool and empties it. The first error
// is returned after all drivers were asked to quit.
func (p *Pool) QuitAll() error {
	p.mu.Lock()
	wrappers := p.wrappers
	p.wrappers = nil
	p.mu.Unlock()

	var first error
	for _, w := range wrappers {
		if w.Driver == nil {
			continue
		}
		if err := w.Driver.Quit(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

var defaultPool = NewPool()

// DefaultPool returns the process-wide pool used when elements and page
// objects are built without an explicit wrapper.
func DefaultPool() *Pool {
	return defaultPool
}

// Register adds w to the default pool.
func Register(w *DriverWrapper) {
	defaultPool.Register(w)
}

// Default returns the default wrapper of the default pool.
func Default() (*DriverWrapper, error) {
	return defaultPool.Default()
}

// Reset empties the default pool.
func Reset() {
	defaultPool.Reset()
}

// Resolve returns w, or the default wrapper when w is nil.
func Resolve(w *DriverWrapper) (*DriverWrapper, error) {
	if w != nil {
		return w, nil
	}
	return Default()
}
