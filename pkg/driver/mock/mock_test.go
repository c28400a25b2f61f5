package mock

import (
	"errors"
	"testing"

	"github.com/devicelab-dev/pageobjects/pkg/core"
	"github.com/devicelab-dev/pageobjects/pkg/driver"
)

var _ driver.Driver = (*Driver)(nil)
var _ driver.Element = (*Element)(nil)

func TestDriver_FindElements(t *testing.T) {
	d := New(
		NewNode(driver.ByClassName, "row", "first"),
		NewNode(driver.ByClassName, "row", "second",
			NewNode(driver.ByClassName, "row", "nested")),
		NewNode(driver.ByID, "footer", "footer"),
	)

	elems, err := d.FindElements(driver.ByClassName, "row")
	if err != nil {
		t.Fatalf("FindElements failed: %v", err)
	}
	if len(elems) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(elems))
	}

	var texts []string
	for _, e := range elems {
		text, _ := e.Text()
		texts = append(texts, text)
	}
	want := []string{"first", "second", "nested"}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("texts[%d] = %q, want %q", i, texts[i], want[i])
		}
	}
	if d.FindCalls() != 1 {
		t.Errorf("FindCalls() = %d, want 1", d.FindCalls())
	}
}

func TestDriver_FindElements_NoMatch(t *testing.T) {
	d := New()

	elems, err := d.FindElements(driver.ByID, "missing")
	if err != nil {
		t.Fatalf("no match should not be an error: %v", err)
	}
	if elems == nil || len(elems) != 0 {
		t.Errorf("expected empty slice, got %v", elems)
	}
}

func TestDriver_FindElement_NotFound(t *testing.T) {
	d := New()

	_, err := d.FindElement(driver.ByID, "missing")
	if !errors.Is(err, core.ErrElementNotFound) {
		t.Errorf("expected ErrElementNotFound, got %v", err)
	}
}

func TestElement_ScopedFind(t *testing.T) {
	d := New(
		NewNode(driver.ByID, "menu", "",
			NewNode(driver.ByTagName, "a", "home")),
		NewNode(driver.ByTagName, "a", "outside"),
	)

	menu, err := d.FindElement(driver.ByID, "menu")
	if err != nil {
		t.Fatalf("FindElement failed: %v", err)
	}
	links, err := menu.FindElements(driver.ByTagName, "a")
	if err != nil {
		t.Fatalf("FindElements failed: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("expected 1 link under menu, got %d", len(links))
	}
	if text, _ := links[0].Text(); text != "home" {
		t.Errorf("link text = %q, want home", text)
	}
}

func TestElement_Interactions(t *testing.T) {
	box := NewNode(driver.ByID, "agree", "")
	box.Attrs["type"] = "checkbox"
	input := NewNode(driver.ByID, "user", "")
	d := New(box, input)

	e, _ := d.FindElement(driver.ByID, "agree")
	_ = e.Click()
	if selected, _ := e.IsSelected(); !selected {
		t.Error("checkbox should be selected after click")
	}
	_ = e.Click()
	if selected, _ := e.IsSelected(); selected {
		t.Error("checkbox should be unselected after second click")
	}
	if box.Clicks != 2 {
		t.Errorf("Clicks = %d, want 2", box.Clicks)
	}

	in, _ := d.FindElement(driver.ByID, "user")
	_ = in.SendKeys("alice")
	if v, _ := in.GetAttribute("value"); v != "alice" {
		t.Errorf("value = %q, want alice", v)
	}
	_ = in.Clear()
	if v, _ := in.GetAttribute("value"); v != "" {
		t.Errorf("value after Clear = %q, want empty", v)
	}
}

func TestDriver_FindErr(t *testing.T) {
	boom := errors.New("session deleted")
	d := New(NewNode(driver.ByID, "x", ""))
	d.FindErr = boom

	if _, err := d.FindElements(driver.ByID, "x"); !errors.Is(err, boom) {
		t.Errorf("expected FindErr, got %v", err)
	}
}

func TestDriver_Quit(t *testing.T) {
	d := New()
	if err := d.Quit(); err != nil {
		t.Fatalf("Quit failed: %v", err)
	}
	if !d.Quitted() {
		t.Error("Quitted() = false after Quit")
	}
}
