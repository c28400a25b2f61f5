package wrapper

import (
	"fmt"

	"github.com/devicelab-dev/pageobjects/pkg/core"
	"github.com/devicelab-dev/pageobjects/pkg/driver"
)

// WebElementer is implemented by page elements: anything that can resolve
// itself to a single driver element.
type WebElementer interface {
	WebElement() (driver.Element, error)
}

// Utils holds helpers that need the wrapper's driver.
type Utils struct {
	wrapper *DriverWrapper
}

// GetWebElement resolves a parent reference to one driver element:
//   - a driver.Element is returned as is
//   - a WebElementer (page element) is asked for its element
//   - a driver.Locator is looked up with the driver
func (u *Utils) GetWebElement(parent any) (driver.Element, error) {
	switch p := parent.(type) {
	case nil:
		return nil, core.ErrInvalidParent.WithMessage("parent is nil")
	case driver.Element:
		return p, nil
	case WebElementer:
		return p.WebElement()
	case driver.Locator:
		if u.wrapper == nil || u.wrapper.Driver == nil {
			return nil, core.ErrNoDriver
		}
		return u.wrapper.Driver.FindElement(p.By, p.Value)
	case *driver.Locator:
		if p == nil {
			return nil, core.ErrInvalidParent.WithMessage("parent is nil")
		}
		return u.GetWebElement(*p)
	default:
		return nil, core.ErrInvalidParent.WithDetails(map[string]interface{}{
			"type": fmt.Sprintf("%T", parent),
		})
	}
}
