// Package ssrhost renders an fnode.Node tree to an HTML string through
// maragu.dev/gomponents, the library the teacher's form and comps
// packages already use for server-side markup (form/render.go,
// comps/page.go). It demonstrates that the renderer's element
// descriptor model (spec.md §4.3) stands on its own, independent of the
// dom package's live host.Host abstraction — exactly the "SSR
// divergence" the design notes call out (spec.md §9).
//
// This is a one-shot snapshot renderer, not a second live Host: reactive
// positions and props are read exactly once, untracked, and no
// hydration markers are emitted (spec.md §1 names client hydration a
// Non-goal). There is nothing here for the dom package's effects to
// attach to; a page rendered by ssrhost is inert until replaced by a
// real client-side Render call.
package ssrhost

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"

	g "maragu.dev/gomponents"

	"github.com/flexium-dev/flexium/fnode"
	"github.com/flexium-dev/flexium/reactivity"
)

// Render writes root's HTML representation to w, reading every reactive
// position and prop exactly once.
func Render(w io.Writer, root any) error {
	return reactivity.UntrackValue(func() error {
		return toNode(root).Render(w)
	})
}

// String is a convenience wrapper returning the rendered HTML directly.
func String(root any) (string, error) {
	var sb strings.Builder
	if err := Render(&sb, root); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// toNode mirrors dom.mount's spec switch (doc.go), but produces an
// immutable gomponents.Node tree instead of live host.Node mutations —
// no per-binding effects are installed, since there is nothing in an
// HTML string for them to update.
func toNode(spec any) g.Node {
	switch v := spec.(type) {
	case nil:
		return g.Group(nil)
	case bool:
		return g.Group(nil)
	case []any:
		children := make([]g.Node, len(v))
		for i, c := range v {
			children[i] = toNode(c)
		}
		return g.Group(children)
	case func() any:
		return toNode(v())
	case *fnode.Node:
		return fnodeToNode(v)
	default:
		if r, ok := spec.(fnode.Reactive); ok {
			return toNode(r.ReadAny())
		}
		if isSlice(spec) {
			return toNode(toAnySlice(spec))
		}
		return g.Text(formatPrimitive(spec))
	}
}

func fnodeToNode(n *fnode.Node) g.Node {
	if comp, ok := n.Type.(fnode.Component); ok {
		return toNode(comp(n.Props))
	}
	if n.Type == fnode.Fragment {
		return toNode(n.Children)
	}
	tag, ok := n.Type.(string)
	if !ok {
		return g.Group(nil)
	}

	parts := make([]g.Node, 0, len(n.Props)+len(n.Children))
	for _, name := range sortedPropNames(n.Props) {
		if attr, ok := attrNode(name, n.Props[name]); ok {
			parts = append(parts, attr)
		}
	}
	for _, c := range n.Children {
		parts = append(parts, toNode(c))
	}
	return g.El(tag, parts...)
}

// attrNode turns one prop into a gomponents attribute node, skipping
// event handlers and refs entirely — they have no meaning in a static
// HTML string (spec.md §1 "client-only" scope; events and refs are
// dom-package concerns only).
func attrNode(name string, value any) (g.Node, bool) {
	switch {
	case name == "ref":
		return nil, false
	case isEventProp(name):
		return nil, false
	case name == "class" || name == "className":
		return g.Attr("class", formatPrimitive(snapshot(value))), true
	case name == "style":
		return styleAttr(snapshot(value))
	default:
		return boolOrValueAttr(name, snapshot(value))
	}
}

func snapshot(value any) any {
	if fn, ok := value.(func() any); ok {
		return fn()
	}
	if r, ok := value.(fnode.Reactive); ok {
		return r.ReadAny()
	}
	return value
}

func boolOrValueAttr(name string, value any) (g.Node, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case bool:
		if !v {
			return nil, false
		}
		return g.Attr(name), true
	default:
		return g.Attr(name, formatPrimitive(v)), true
	}
}

func styleAttr(value any) (g.Node, bool) {
	switch v := value.(type) {
	case string:
		return g.Attr("style", v), true
	case map[string]any:
		names := make([]string, 0, len(v))
		for k := range v {
			names = append(names, k)
		}
		sort.Strings(names)
		out := ""
		for _, k := range names {
			out += kebabCase(k) + ":" + formatPrimitive(v[k]) + ";"
		}
		return g.Attr("style", out), true
	default:
		return nil, false
	}
}

func isEventProp(name string) bool {
	if len(name) < 3 || name[0] != 'o' || name[1] != 'n' {
		return false
	}
	return name[2] >= 'A' && name[2] <= 'Z'
}

func sortedPropNames(props fnode.Props) []string {
	names := make([]string, 0, len(props))
	for k := range props {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func kebabCase(s string) string {
	var out []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				out = append(out, '-')
			}
			out = append(out, c-'A'+'a')
			continue
		}
		out = append(out, c)
	}
	return string(out)
}

func isSlice(v any) bool {
	if v == nil {
		return false
	}
	return reflect.ValueOf(v).Kind() == reflect.Slice
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
	case fmt.Stringer:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
