//go:build js && wasm

package dom

import (
	"honnef.co/go/js/dom/v2"

	"github.com/flexium-dev/flexium/host"
)

// WasmHost implements host.Host over a real browser DOM via
// honnef.co/go/js/dom/v2, the same binding the teacher's wasm/ and
// bridge/ packages use. It is the host.Host a compiled WebAssembly build
// passes to Render; dom/testhost stands in for it in headless tests.
type WasmHost struct {
	doc dom.Document
}

// NewWasmHost returns a WasmHost bound to the current page's document.
func NewWasmHost() *WasmHost {
	return &WasmHost{doc: dom.GetWindow().Document()}
}

// MustGetElementByID looks up an existing page element to mount into,
// panicking if it is missing — the same "the host page supplies the
// mount point" convention as the teacher's comps.Mount(id, ...), which
// resolves its container argument through dom.GetWindow().Document()
// before attaching anything.
func MustGetElementByID(h *WasmHost, id string) host.Node {
	el := h.doc.GetElementByID(id)
	if el == nil {
		panic("dom: no element #" + id + " to mount into")
	}
	return el
}

func (w *WasmHost) CreateElement(tag string) host.Node {
	return w.doc.CreateElement(tag)
}

// CreateTextNode and CreateComment go through the raw JS document object
// and dom.WrapElement: dom/v2's Document interface has no CreateTextNode
// or CreateComment of its own, the same gap the teacher's bridge package
// works around (bridge/real_bridge.go RealDOMDocument.CreateTextNode).
func (w *WasmHost) CreateTextNode(text string) host.Node {
	jsDoc := w.doc.Underlying()
	return dom.WrapElement(jsDoc.Call("createTextNode", text))
}

func (w *WasmHost) CreateComment(data string) host.Node {
	jsDoc := w.doc.Underlying()
	return dom.WrapElement(jsDoc.Call("createComment", data))
}

func (w *WasmHost) SetText(node host.Node, text string) {
	asNode(node).Underlying().Set("data", text)
}

func (w *WasmHost) InsertBefore(parent, node, reference host.Node) {
	p := asNode(parent)
	n := asNode(node)
	if reference == nil {
		p.AppendChild(n)
		return
	}
	p.InsertBefore(n, asNode(reference))
}

func (w *WasmHost) RemoveChild(parent, node host.Node) {
	p := asNode(parent)
	n := asNode(node)
	if n.ParentNode() != p {
		return
	}
	p.RemoveChild(n)
}

func (w *WasmHost) ParentNode(node host.Node) host.Node {
	parent := asNode(node).ParentNode()
	if parent == nil {
		return nil
	}
	return parent
}

func (w *WasmHost) SetAttribute(el host.Node, name, value string) {
	asElement(el).SetAttribute(name, value)
}

func (w *WasmHost) RemoveAttribute(el host.Node, name string) {
	asElement(el).RemoveAttribute(name)
}

func (w *WasmHost) SetClassName(el host.Node, class string) {
	asElement(el).Class().SetString(class)
}

func (w *WasmHost) SetStyleProperty(el host.Node, prop, value string) {
	if htmlEl, ok := asElement(el).(dom.HTMLElement); ok {
		htmlEl.Style().SetProperty(prop, value, "")
	}
}

func (w *WasmHost) RemoveStyleProperty(el host.Node, prop string) {
	if htmlEl, ok := asElement(el).(dom.HTMLElement); ok {
		htmlEl.Style().RemoveProperty(prop)
	}
}

// AddEventListener attaches handler through dom/v2's EventTarget, keeping
// the js.Func it returns so the removal closure can release it and pass
// it back to RemoveEventListener — the teacher's bridge package skips
// this (bridge/real_bridge.go RealDOMElement.RemoveEventListener logs a
// "not fully supported" warning instead), but spec.md §4.4 step 5
// requires a reactive event prop to genuinely detach its old handler
// before attaching a new one, so this does the real thing.
func (w *WasmHost) AddEventListener(el host.Node, eventType string, handler func(host.Event)) func() {
	target := asNode(el)
	fn := target.AddEventListener(eventType, false, func(e dom.Event) {
		handler(&wasmEvent{e})
	})
	return func() {
		target.RemoveEventListener(eventType, false, fn)
		fn.Release()
	}
}

type wasmEvent struct {
	e dom.Event
}

func (w *wasmEvent) Type() string      { return w.e.Type() }
func (w *wasmEvent) Target() host.Node { return w.e.Target() }
func (w *wasmEvent) PreventDefault()   { w.e.PreventDefault() }
func (w *wasmEvent) StopPropagation()  { w.e.StopPropagation() }

// Key reports the pressed key for a keyboard event, reading dom/v2's
// KeyboardEvent.Key() when the underlying event supports it. Event
// handlers that care about specific keys can type-assert host.Event to a
// local interface with a Key() string method rather than importing dom
// directly.
func (w *wasmEvent) Key() string {
	if kb, ok := w.e.(dom.KeyboardEvent); ok {
		return kb.Key()
	}
	return ""
}

// Value reads the current value of a form control target, backing
// event-driven two-way binding the same way the teacher's bridge
// package exposes element.Value() to
// callbacks bound through DelegateEvent.
func (w *wasmEvent) Value() string {
	el, ok := w.e.Target().(dom.Element)
	if !ok {
		return ""
	}
	return el.Underlying().Get("value").String()
}

func asNode(n host.Node) dom.Node {
	node, ok := n.(dom.Node)
	if !ok {
		panic("dom: WasmHost received a handle that is not a dom.Node")
	}
	return node
}

func asElement(n host.Node) dom.Element {
	el, ok := n.(dom.Element)
	if !ok {
		panic("dom: WasmHost received a handle that is not a dom.Element")
	}
	return el
}
