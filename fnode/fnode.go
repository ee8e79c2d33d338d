// Package fnode implements the element descriptor model (spec.md §4.3,
// C3): the immutable value objects a component tree is built from before
// the renderer ever touches a real DOM node.
package fnode

// Props carries an element or component's attributes, keyed by name.
// "key", "ref", "style", "class"/"className", and "on*" event names are
// all ordinary entries interpreted by the renderer (dom package); fnode
// itself only special-cases "key" at construction time.
type Props map[string]any

// Component is a user-defined element type: a function from props to a
// returned subtree. Invoked exactly once per mounted instance (P6).
type Component func(props Props) any

// fragmentType is the sentinel Fragment's concrete type, unexported so
// nothing but this package can construct an equal value.
type fragmentType struct{}

// Fragment is a well-known Node.Type value meaning "render Children
// in-place with no wrapping DOM element."
var Fragment = fragmentType{}

// Node is the descriptor produced by F/Jsx/Jsxs. Type is a string (host
// tag), a Component, or Fragment. Children is a flattened (one level)
// ordered sequence of ChildSpec values — see doc.go for the variant's
// members. Key, when non-nil, identifies this node across re-evaluations
// of the reactive position it sits in (spec.md §4.5).
type Node struct {
	Type     any
	Props    Props
	Children []any
	Key      any
}

// F builds a descriptor. If props contains a "key" entry, it is lifted
// into Node.Key and removed from Props so the renderer never sees it as
// an ordinary attribute. children is flattened one level: a []any
// (including a nested []any returned by, say, a helper that built a
// slice of children) is spread, not nested as a single child. nil,
// booleans, and other primitives are preserved as-is; the renderer
// mounts nil and booleans as nothing visible and other primitives as
// text when it walks them.
func F(typ any, props Props, children ...any) *Node {
	if props == nil {
		props = Props{}
	}
	var key any
	if k, ok := props["key"]; ok {
		key = k
		props = cloneWithoutKey(props)
	}
	return &Node{
		Type:     typ,
		Props:    props,
		Children: flatten(children),
		Key:      key,
	}
}

// Jsx is the transpiler-facing single-child entry point: props["children"],
// if present, supplies the child list (a single value or a []any).
func Jsx(typ any, props Props, key ...any) *Node {
	return jsxCommon(typ, props, key)
}

// Jsxs is the transpiler-facing multi-child entry point. It funnels into
// the same factory as Jsx; the distinction exists in source JSX
// compilers to hint arity, not to change behaviour here.
func Jsxs(typ any, props Props, key ...any) *Node {
	return jsxCommon(typ, props, key)
}

func jsxCommon(typ any, props Props, key []any) *Node {
	if props == nil {
		props = Props{}
	}
	var children []any
	if c, ok := props["children"]; ok {
		switch v := c.(type) {
		case []any:
			children = v
		default:
			children = []any{v}
		}
	}
	props = withoutEntry(props, "children")

	n := F(typ, props, children...)
	if len(key) > 0 {
		n.Key = key[0]
	}
	return n
}

func cloneWithoutKey(p Props) Props {
	return withoutEntry(p, "key")
}

func withoutEntry(p Props, name string) Props {
	if _, ok := p[name]; !ok {
		return p
	}
	out := make(Props, len(p))
	for k, v := range p {
		if k == name {
			continue
		}
		out[k] = v
	}
	return out
}

// flatten spreads one level of []any nesting, matching the factory's
// "arrays spread" rule (spec.md §4.3). It does not recurse further: a
// ChildSpec that is itself a []any inside an already-flattened slice is
// left alone for the renderer to flatten structurally (spec.md §3,
// ChildSpec "array of ChildSpec").
func flatten(children []any) []any {
	out := make([]any, 0, len(children))
	for _, c := range children {
		if nested, ok := c.([]any); ok {
			out = append(out, nested...)
			continue
		}
		out = append(out, c)
	}
	return out
}
