package wrapper

import (
	"errors"
	"testing"

	"github.com/devicelab-dev/pageobjects/pkg/config"
	"github.com/devicelab-dev/pageobjects/pkg/core"
	"github.com/devicelab-dev/pageobjects/pkg/driver"
	"github.com/devicelab-dev/pageobjects/pkg/driver/mock"
)

func TestNew_DefaultsConfig(t *testing.T) {
	w := New(mock.New(), nil)

	if w.Config == nil {
		t.Fatal("Config should default to an empty config")
	}
	if w.Utils == nil {
		t.Fatal("Utils should be set")
	}
}

func TestPool_Default(t *testing.T) {
	p := NewPool()

	if _, err := p.Default(); !errors.Is(err, core.ErrNoDriverWrapper) {
		t.Fatalf("expected ErrNoDriverWrapper, got %v", err)
	}

	first := New(mock.New(), config.New())
	second := New(mock.New(), config.New())
	p.Register(first)
	p.Register(second)

	got, err := p.Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if got != first {
		t.Error("Default should be the first registered wrapper")
	}
	if len(p.Wrappers()) != 2 {
		t.Errorf("Wrappers() = %d, want 2", len(p.Wrappers()))
	}

	p.Reset()
	if len(p.Wrappers()) != 0 {
		t.Error("Reset should empty the pool")
	}
}

func TestPool_QuitAll(t *testing.T) {
	p := NewPool()
	d1, d2 := mock.New(), mock.New()
	p.Register(New(d1, nil))
	p.Register(New(d2, nil))

	if err := p.QuitAll(); err != nil {
		t.Fatalf("QuitAll failed: %v", err)
	}
	if !d1.Quitted() || !d2.Quitted() {
		t.Error("every driver should be quit")
	}
	if len(p.Wrappers()) != 0 {
		t.Error("QuitAll should empty the pool")
	}
}

func TestResolve(t *testing.T) {
	Reset()
	defer Reset()

	explicit := New(mock.New(), nil)
	if got, _ := Resolve(explicit); got != explicit {
		t.Error("Resolve should return the explicit wrapper")
	}

	if _, err := Resolve(nil); !errors.Is(err, core.ErrNoDriverWrapper) {
		t.Errorf("expected ErrNoDriverWrapper with empty pool, got %v", err)
	}

	def := New(mock.New(), nil)
	Register(def)
	if got, _ := Resolve(nil); got != def {
		t.Error("Resolve(nil) should return the default wrapper")
	}
	if DefaultPool().Wrappers()[0] != def {
		t.Error("DefaultPool should hold the registered wrapper")
	}
}

type fakePageElement struct {
	elem driver.Element
}

func (f fakePageElement) WebElement() (driver.Element, error) { return f.elem, nil }

func TestUtils_GetWebElement(t *testing.T) {
	d := mock.New(mock.NewNode(driver.ByID, "table", "t"))
	w := New(d, nil)

	table, err := d.FindElement(driver.ByID, "table")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		parent any
	}{
		{"element", table},
		{"page element", fakePageElement{elem: table}},
		{"locator", driver.NewLocator(driver.ByID, "table")},
		{"locator pointer", &driver.Locator{By: driver.ByID, Value: "table"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := w.Utils.GetWebElement(tt.parent)
			if err != nil {
				t.Fatalf("GetWebElement failed: %v", err)
			}
			if text, _ := got.Text(); text != "t" {
				t.Errorf("resolved wrong element: text %q", text)
			}
		})
	}
}

func TestUtils_GetWebElement_Invalid(t *testing.T) {
	w := New(mock.New(), nil)

	for _, parent := range []any{nil, 42, "id=table"} {
		if _, err := w.Utils.GetWebElement(parent); !errors.Is(err, core.ErrInvalidParent) {
			t.Errorf("GetWebElement(%v) error = %v, want ErrInvalidParent", parent, err)
		}
	}
}

func TestUtils_GetWebElement_LocatorNotFound(t *testing.T) {
	w := New(mock.New(), nil)

	_, err := w.Utils.GetWebElement(driver.NewLocator(driver.ByID, "missing"))
	if !errors.Is(err, core.ErrElementNotFound) {
		t.Errorf("expected the driver's not-found error, got %v", err)
	}
}
