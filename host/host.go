// Package host defines the narrow DOM-like interface the renderer talks
// to (spec.md §6, §9 "DOM as an external mutable resource"). It is
// deliberately smaller than a full DOM binding: createElement,
// createTextNode, createComment, text-node data updates, insertBefore,
// removeChild, parent lookup, attribute/class/style mutators, and
// addEventListener (whose returned function removes the listener) —
// nothing else.
// Two concrete implementations live alongside the renderer: dom.WasmHost
// for compiled WebAssembly builds and dom/testhost for headless tests.
package host

// Node is an opaque handle to a live host node — an element, a text
// node, or a comment. The renderer never inspects it; it only ever
// passes handles it received from Host back into Host.
type Node interface{}

// Event is the narrow event surface event handler props receive.
type Event interface {
	Type() string
	Target() Node
	PreventDefault()
	StopPropagation()
}

// Host is the DOM-like environment the renderer mounts into. Every node
// insertion and every static event-listener attachment is paired, in the
// renderer, with a disposer registered on the scope active when it was
// made (spec.md §9); attribute, class, style and text writes are not
// undone individually and go away with their element.
type Host interface {
	// CreateElement creates a new element for the given tag name.
	CreateElement(tag string) Node
	// CreateTextNode creates a text node with the given initial content.
	CreateTextNode(text string) Node
	// CreateComment creates a comment node, used as a slot anchor.
	CreateComment(data string) Node

	// SetText updates a text or comment node's data in place.
	SetText(node Node, text string)

	// InsertBefore inserts node as a child of parent, immediately before
	// reference. A nil reference means "append at the end".
	InsertBefore(parent, node, reference Node)
	// RemoveChild detaches node from parent. A no-op if node is not
	// currently a child of parent.
	RemoveChild(parent, node Node)
	// ParentNode returns node's current parent, or nil if detached.
	ParentNode(node Node) Node

	// SetAttribute sets a plain attribute on an element.
	SetAttribute(el Node, name, value string)
	// RemoveAttribute removes an attribute from an element.
	RemoveAttribute(el Node, name string)
	// SetClassName assigns the element's class attribute directly.
	SetClassName(el Node, class string)

	// SetStyleProperty sets a single CSS property on an element's style.
	SetStyleProperty(el Node, prop, value string)
	// RemoveStyleProperty clears a single CSS property.
	RemoveStyleProperty(el Node, prop string)

	// AddEventListener attaches handler for eventType on el and returns a
	// function that removes it. Attaching a new handler for the same
	// logical prop is always preceded by calling the previous removal
	// function — the renderer never double-attaches.
	AddEventListener(el Node, eventType string, handler func(Event)) func()
}
