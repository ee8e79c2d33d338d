// Package dom implements the renderer (spec.md §4.4, §4.5, components
// C4 and C5): it walks an fnode.Node tree, creates live nodes through a
// host.Host, and keeps them current by installing one effect per
// reactive attribute, text, or child-list position. There is no
// whole-tree diff — a component function runs exactly once, and
// thereafter only the bindings that actually depend on changed signals
// re-run.
package dom

import (
	"reflect"
	"strconv"

	"github.com/flexium-dev/flexium/fnode"
	"github.com/flexium-dev/flexium/host"
	"github.com/flexium-dev/flexium/internal/logx"
	"github.com/flexium-dev/flexium/reactivity"
)

// Render mounts root as a child of container and returns a disposer that
// tears down every effect and DOM node the renderer created underneath
// it (spec.md §4.4 "Entry").
func Render(h host.Host, root any, container host.Node) func() {
	var dispose func()
	reactivity.CreateRoot(func(d func()) {
		dispose = d
		mount(h, container, nil, root)
	})
	return dispose
}

// mount projects spec into real host nodes, inserted as a child of
// parent immediately before anchor (nil meaning "append at the end").
// Every disposer it registers attaches to reactivity.CurrentScope() —
// callers that want mounted content to be torn down independently of
// their own scope must first open a child scope and make it active.
//
// Specs that can expand into more than one top-level node — a Fragment,
// a reactive position, or a raw slice — are handled here; everything
// else is delegated to mountOne, which is also the entry point
// listController uses when it needs a single tracked node per item.
func mount(h host.Host, parent host.Node, anchor host.Node, spec any) {
	switch v := spec.(type) {
	case []any:
		for _, c := range v {
			mount(h, parent, anchor, c)
		}
		return
	case func() any:
		mountReactive(h, parent, anchor, v)
		return
	case fnode.Reactive:
		mountReactive(h, parent, anchor, v.ReadAny)
		return
	}
	if n, ok := spec.(*fnode.Node); ok && n.Type == fnode.Fragment {
		for _, c := range n.Children {
			mount(h, parent, anchor, c)
		}
		return
	}
	if isSlice(spec) {
		for _, c := range toAnySlice(spec) {
			mount(h, parent, anchor, c)
		}
		return
	}
	mountOne(h, parent, anchor, spec)
}

// mountOne mounts spec to exactly one top-level host node and returns
// it: a host element, a text node, or a zero-width comment placeholder
// (nil/bool children — spec.md §4.4 step 6). Component descriptors
// resolve recursively until one of those is reached.
//
// Called both by mount (for the general tree, where the return value is
// unused) and directly by listController, which needs per-item node
// identity to reposition records with the minimum number of DOM moves.
// When mountOne is handed a spec that would normally expand to more than
// one node, it still returns a single node: a reactive position or signal
// is read once, non-reactively, and its result mounted; a Fragment or
// slice returns its first child's node, with the remaining children
// mounted after it through mount (so they are not part of the returned
// node). See listController's doc comment for why keyed list items are
// restricted to single-node specs.
func mountOne(h host.Host, parent host.Node, anchor host.Node, spec any) host.Node {
	switch v := spec.(type) {
	case nil:
		return insertPlaceholder(h, parent, anchor)
	case bool:
		return insertPlaceholder(h, parent, anchor)
	case *fnode.Node:
		if comp, ok := v.Type.(fnode.Component); ok {
			return mountOne(h, parent, anchor, comp(v.Props))
		}
		if v.Type == fnode.Fragment {
			if len(v.Children) == 0 {
				return insertPlaceholder(h, parent, anchor)
			}
			logx.Default.Warn("dom: a Fragment was mounted where a single node was required; only its first child is tracked")
			first := mountOne(h, parent, anchor, v.Children[0])
			for _, c := range v.Children[1:] {
				mount(h, parent, anchor, c)
			}
			return first
		}
		tag, ok := v.Type.(string)
		if !ok {
			logx.Default.Error("dom: descriptor has an unrecognised Type", "type", v.Type)
			return insertPlaceholder(h, parent, anchor)
		}
		return mountElement(h, parent, anchor, tag, v)
	case func() any:
		logx.Default.Warn("dom: a reactive position was mounted where a single node was required; it was read once and will not update")
		return mountOne(h, parent, anchor, v())
	default:
		if r, ok := spec.(fnode.Reactive); ok {
			logx.Default.Warn("dom: a signal was mounted where a single node was required; it was read once and will not update")
			return mountOne(h, parent, anchor, r.ReadAny())
		}
		if isSlice(spec) {
			items := toAnySlice(spec)
			if len(items) == 0 {
				return insertPlaceholder(h, parent, anchor)
			}
			logx.Default.Warn("dom: a slice was mounted where a single node was required; only its first element is tracked")
			first := mountOne(h, parent, anchor, items[0])
			for _, c := range items[1:] {
				mount(h, parent, anchor, c)
			}
			return first
		}
		return insertText(h, parent, anchor, formatPrimitive(spec))
	}
}

func insertPlaceholder(h host.Host, parent host.Node, anchor host.Node) host.Node {
	n := h.CreateComment("")
	h.InsertBefore(parent, n, anchor)
	if scope := reactivity.CurrentScope(); scope != nil {
		scope.OnDispose(func() { h.RemoveChild(parent, n) })
	}
	return n
}

func insertText(h host.Host, parent host.Node, anchor host.Node, text string) host.Node {
	n := h.CreateTextNode(text)
	h.InsertBefore(parent, n, anchor)
	if scope := reactivity.CurrentScope(); scope != nil {
		scope.OnDispose(func() { h.RemoveChild(parent, n) })
	}
	return n
}

// mountElement creates a host tag element, applies its props, and mounts
// its children as its own (appended) content (spec.md §4.4 step 5).
func mountElement(h host.Host, parent host.Node, anchor host.Node, tag string, n *fnode.Node) host.Node {
	el := h.CreateElement(tag)
	scope := reactivity.CurrentScope()

	applyProps(h, scope, el, n.Props)

	for _, c := range n.Children {
		mount(h, el, nil, c)
	}

	h.InsertBefore(parent, el, anchor)
	if scope != nil {
		scope.OnDispose(func() { h.RemoveChild(parent, el) })
	}
	return el
}

// mountReactive installs the per-binding effect for a function-returning
// ChildSpec position (spec.md §4.4 step 2). Scalar results are mounted
// and torn down inside the effect's own per-run scope automatically; a
// slice result is handed to the keyed-children controller instead, which
// keeps its own state alive across runs rather than tearing down and
// remounting on every evaluation.
func mountReactive(h host.Host, parent host.Node, outerAnchor host.Node, fn func() any) {
	positionScope := reactivity.CurrentScope()
	innerAnchor := h.CreateComment("")
	h.InsertBefore(parent, innerAnchor, outerAnchor)
	if positionScope != nil {
		positionScope.OnDispose(func() { h.RemoveChild(parent, innerAnchor) })
	}

	var list *listController

	reactivity.CreateEffect(func() {
		result := fn()
		items, ok := asChildList(result)
		if ok {
			if list == nil {
				list = newListController(h, positionScope, parent, innerAnchor)
			}
			list.update(items)
			return
		}
		if list != nil {
			list.disposeAll()
			list = nil
		}
		mount(h, parent, innerAnchor, result)
	})
}

// asChildList reports whether v should be treated as a reactive children
// list (spec.md §3: "array of ChildSpec") rather than a single ChildSpec,
// returning it normalised to []any.
func asChildList(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case nil:
		return nil, false
	default:
		if isSlice(v) {
			return toAnySlice(v), true
		}
		return nil, false
	}
}

func isSlice(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Slice
}

func toAnySlice(v any) []any {
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func formatPrimitive(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt_Stringer:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return reflectString(v)
	}
}

// fmt_Stringer avoids importing fmt just for the Stringer interface shape.
type fmt_Stringer interface{ String() string }

func reflectString(v any) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	default:
		return ""
	}
}
