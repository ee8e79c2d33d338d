// Package testhost is a headless, in-memory host.Host implementation
// used by dom package tests and by any consumer that wants to exercise
// the renderer without a browser. It is grounded on the teacher's
// mockdom package (an in-memory node graph plus scripted event dispatch)
// but narrowed down to exactly the operations host.Host declares.
package testhost

import (
	"fmt"
	"strings"
	"sync"

	"github.com/flexium-dev/flexium/host"
)

// Kind distinguishes the three node shapes the narrow Host interface
// ever creates.
type Kind int

const (
	KindElement Kind = iota
	KindText
	KindComment
)

// Node is a handle into the in-memory tree. It satisfies host.Node
// (any) structurally — callers never need to import testhost to pass
// handles around, only to inspect them in assertions.
type Node struct {
	Kind       Kind
	Tag        string // element only
	Data       string // text/comment content
	Attrs      map[string]string
	Style      map[string]string
	Class      string
	Parent     *Node
	ChildNodes []*Node

	mu        sync.Mutex
	listeners map[string][]func(host.Event)
}

func newNode(k Kind) *Node {
	return &Node{
		Kind:      k,
		Attrs:     make(map[string]string),
		Style:     make(map[string]string),
		listeners: make(map[string][]func(host.Event)),
	}
}

// Text returns the node's rendered text — its own Data for text/comment
// nodes, or the concatenation of descendant text for an element, mainly
// useful for assertions in tests.
func (n *Node) Text() string {
	if n.Kind != KindElement {
		return n.Data
	}
	var sb strings.Builder
	for _, c := range n.ChildNodes {
		sb.WriteString(c.Text())
	}
	return sb.String()
}

// String renders a small debug tree, handy for test failure messages.
func (n *Node) String() string {
	switch n.Kind {
	case KindText:
		return fmt.Sprintf("#text(%q)", n.Data)
	case KindComment:
		return fmt.Sprintf("#comment(%q)", n.Data)
	default:
		return fmt.Sprintf("<%s>", n.Tag)
	}
}

// Event is the in-memory host.Event used by Dispatch.
type Event struct {
	EventType    string
	TargetNode   *Node
	prevented    bool
	stopped      bool
}

func (e *Event) Type() string       { return e.EventType }
func (e *Event) Target() host.Node  { return e.TargetNode }
func (e *Event) PreventDefault()    { e.prevented = true }
func (e *Event) StopPropagation()   { e.stopped = true }
func (e *Event) DefaultPrevented() bool { return e.prevented }

// Host is the in-memory host.Host implementation.
type Host struct{}

// New returns a fresh Host. The host itself is stateless; all state
// lives in the Node tree it creates.
func New() *Host { return &Host{} }

func (h *Host) CreateElement(tag string) host.Node {
	n := newNode(KindElement)
	n.Tag = tag
	return n
}

func (h *Host) CreateTextNode(text string) host.Node {
	n := newNode(KindText)
	n.Data = text
	return n
}

func (h *Host) CreateComment(data string) host.Node {
	n := newNode(KindComment)
	n.Data = data
	return n
}

func (h *Host) SetText(node host.Node, text string) {
	n := asNode(node)
	n.Data = text
}

func (h *Host) InsertBefore(parent, node, reference host.Node) {
	p := asNode(parent)
	c := asNode(node)

	// Detach c from wherever it currently lives (a move, not a copy —
	// matches real DOM insertBefore semantics).
	if c.Parent != nil {
		removeFromSlice(c.Parent, c)
	}
	c.Parent = p

	if reference == nil {
		p.ChildNodes = append(p.ChildNodes, c)
		return
	}
	ref := asNode(reference)
	idx := indexOf(p, ref)
	if idx < 0 {
		p.ChildNodes = append(p.ChildNodes, c)
		return
	}
	p.ChildNodes = append(p.ChildNodes, nil)
	copy(p.ChildNodes[idx+1:], p.ChildNodes[idx:])
	p.ChildNodes[idx] = c
}

func (h *Host) RemoveChild(parent, node host.Node) {
	p := asNode(parent)
	c := asNode(node)
	if c.Parent == p {
		c.Parent = nil
	}
	removeFromSlice(p, c)
}

func (h *Host) ParentNode(node host.Node) host.Node {
	n := asNode(node)
	if n.Parent == nil {
		return nil
	}
	return n.Parent
}

func (h *Host) SetAttribute(el host.Node, name, value string) {
	n := asNode(el)
	n.Attrs[name] = value
}

func (h *Host) RemoveAttribute(el host.Node, name string) {
	n := asNode(el)
	delete(n.Attrs, name)
}

func (h *Host) SetClassName(el host.Node, class string) {
	n := asNode(el)
	n.Class = class
}

func (h *Host) SetStyleProperty(el host.Node, prop, value string) {
	n := asNode(el)
	n.Style[prop] = value
}

func (h *Host) RemoveStyleProperty(el host.Node, prop string) {
	n := asNode(el)
	delete(n.Style, prop)
}

func (h *Host) AddEventListener(el host.Node, eventType string, handler func(host.Event)) func() {
	n := asNode(el)
	n.mu.Lock()
	n.listeners[eventType] = append(n.listeners[eventType], handler)
	idx := len(n.listeners[eventType]) - 1
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		list := n.listeners[eventType]
		if idx < 0 || idx >= len(list) {
			return
		}
		list[idx] = nil
	}
}

// Dispatch synchronously invokes every still-registered listener of
// eventType on node, in registration order — a test helper standing in
// for the browser's event dispatch so that event-prop tests need not
// use a real DOM.
func Dispatch(node *Node, eventType string) *Event {
	ev := &Event{EventType: eventType, TargetNode: node}
	node.mu.Lock()
	handlers := append([]func(host.Event){}, node.listeners[eventType]...)
	node.mu.Unlock()
	for _, fn := range handlers {
		if fn != nil {
			fn(ev)
		}
	}
	return ev
}

func asNode(n host.Node) *Node {
	tn, ok := n.(*Node)
	if !ok {
		panic(fmt.Sprintf("testhost: expected *testhost.Node, got %T", n))
	}
	return tn
}

func indexOf(parent, child *Node) int {
	for i, c := range parent.ChildNodes {
		if c == child {
			return i
		}
	}
	return -1
}

func removeFromSlice(parent, child *Node) {
	for i, c := range parent.ChildNodes {
		if c == child {
			parent.ChildNodes = append(parent.ChildNodes[:i], parent.ChildNodes[i+1:]...)
			return
		}
	}
}
