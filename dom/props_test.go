package dom_test

import (
	"testing"

	"github.com/flexium-dev/flexium/dom"
	"github.com/flexium-dev/flexium/dom/testhost"
	"github.com/flexium-dev/flexium/fnode"
	"github.com/flexium-dev/flexium/host"
	"github.com/flexium-dev/flexium/reactivity"
)

func TestStyleMapSetsKebabCasedProperties(t *testing.T) {
	h := testhost.New()
	root := newRoot(h)

	n := fnode.F("div", fnode.Props{
		"style": map[string]any{
			"backgroundColor": "red",
			"fontSize":        16,
			"opacity":         0.5,
		},
	})
	dispose := dom.Render(h, n, root)
	defer dispose()

	el := root.ChildNodes[0]
	if el.Style["background-color"] != "red" {
		t.Fatalf("background-color = %q, want red", el.Style["background-color"])
	}
	if el.Style["font-size"] != "16px" {
		t.Fatalf("font-size = %q, want 16px", el.Style["font-size"])
	}
	if el.Style["opacity"] != "0.5" {
		t.Fatalf("opacity = %q, want 0.5 (unitless)", el.Style["opacity"])
	}
}

func TestStyleStringIsSetAsRawAttribute(t *testing.T) {
	h := testhost.New()
	root := newRoot(h)

	n := fnode.F("div", fnode.Props{"style": "color: blue;"})
	dispose := dom.Render(h, n, root)
	defer dispose()

	el := root.ChildNodes[0]
	if el.Attrs["style"] != "color: blue;" {
		t.Fatalf("style attr = %q, want %q", el.Attrs["style"], "color: blue;")
	}
}

func TestRefCallbackReceivesElementThenNilOnDispose(t *testing.T) {
	h := testhost.New()
	root := newRoot(h)

	var got host.Node
	n := fnode.F("div", fnode.Props{
		"ref": func(el host.Node) { got = el },
	})
	dispose := dom.Render(h, n, root)

	if got == nil {
		t.Fatal("ref callback was never invoked with a live element")
	}
	dispose()
	if got != nil {
		t.Fatal("ref callback should receive nil once the element is disposed")
	}
}

func TestRefSignalIsSetAndClearedOnDispose(t *testing.T) {
	h := testhost.New()
	root := newRoot(h)

	ref := reactivity.CreateSignal[host.Node](nil)
	n := fnode.F("div", fnode.Props{"ref": ref})
	dispose := dom.Render(h, n, root)

	if ref.Get() == nil {
		t.Fatal("ref signal was never set")
	}
	dispose()
	if ref.Get() != nil {
		t.Fatal("ref signal should be cleared on dispose")
	}
}

func TestBooleanAttributeSemantics(t *testing.T) {
	h := testhost.New()
	root := newRoot(h)

	n := fnode.F("input", fnode.Props{"checked": true, "hidden": false})
	dispose := dom.Render(h, n, root)
	defer dispose()

	el := root.ChildNodes[0]
	if v, ok := el.Attrs["checked"]; !ok || v != "" {
		t.Fatalf("checked attr = (%q, %v), want (\"\", true)", v, ok)
	}
	if _, ok := el.Attrs["hidden"]; ok {
		t.Fatal("hidden attribute should not be present when false")
	}
}

func TestEventHandlerSwapDetachesPreviousListener(t *testing.T) {
	h := testhost.New()
	root := newRoot(h)

	mode := reactivity.CreateSignal(0)
	var firstCalls, secondCalls int

	n := fnode.F("button", fnode.Props{
		"onClick": func() any {
			if mode.Get() == 0 {
				return func(e host.Event) { firstCalls++ }
			}
			return func(e host.Event) { secondCalls++ }
		},
	})
	dispose := dom.Render(h, n, root)
	defer dispose()

	el := root.ChildNodes[0]
	testhost.Dispatch(el, "click")
	if firstCalls != 1 || secondCalls != 0 {
		t.Fatalf("firstCalls=%d secondCalls=%d, want 1,0", firstCalls, secondCalls)
	}

	mode.Set(1)
	testhost.Dispatch(el, "click")
	if firstCalls != 1 || secondCalls != 1 {
		t.Fatalf("firstCalls=%d secondCalls=%d, want 1,1 (old handler must be detached)", firstCalls, secondCalls)
	}
}
