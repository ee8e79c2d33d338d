package dom

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/flexium-dev/flexium/fnode"
	"github.com/flexium-dev/flexium/host"
	"github.com/flexium-dev/flexium/reactivity"
)

// unitlessStyleProps is the fixed set of CSS properties that take a bare
// number (no "px" suffix) when given a numeric style value (spec.md
// §4.4 step 5).
var unitlessStyleProps = map[string]bool{
	"animationIterationCount": true,
	"aspectRatio":             true,
	"columnCount":             true,
	"flex":                    true,
	"flexGrow":                true,
	"flexShrink":              true,
	"fontWeight":              true,
	"gridColumn":              true,
	"gridRow":                 true,
	"lineHeight":              true,
	"opacity":                 true,
	"order":                   true,
	"orphans":                 true,
	"widows":                  true,
	"zIndex":                  true,
	"zoom":                    true,
}

// applyProps splits n's props into event handlers, ref, style, class,
// and plain attributes, and wires each according to spec.md §4.4 step 5.
func applyProps(h host.Host, scope *reactivity.Scope, el host.Node, props fnode.Props) {
	for name, value := range props {
		switch {
		case name == "ref":
			applyRef(scope, el, value)
		case name == "style":
			applyStyle(h, scope, el, value)
		case name == "class" || name == "className":
			applyClass(h, scope, el, value)
		case isEventProp(name):
			applyEvent(h, scope, el, name, value)
		default:
			applyAttr(h, scope, el, name, value)
		}
	}
}

func isEventProp(name string) bool {
	if len(name) < 3 || name[0] != 'o' || name[1] != 'n' {
		return false
	}
	return unicode.IsUpper(rune(name[2]))
}

// eventNameFromProp converts "onClick" to the DOM event type "click".
func eventNameFromProp(name string) string {
	rest := name[2:]
	if rest == "" {
		return rest
	}
	return strings.ToLower(rest[:1]) + rest[1:]
}

func applyEvent(h host.Host, scope *reactivity.Scope, el host.Node, name string, value any) {
	eventType := eventNameFromProp(name)

	attach := func(v any) func() {
		handler, ok := v.(func(host.Event))
		if !ok || handler == nil {
			return nil
		}
		return h.AddEventListener(el, eventType, handler)
	}

	if fn, ok := value.(func() any); ok {
		var remove func()
		reactivity.CreateEffect(func() {
			if remove != nil {
				remove()
				remove = nil
			}
			remove = attach(fn())
		})
		return
	}

	remove := attach(value)
	if remove != nil && scope != nil {
		scope.OnDispose(remove)
	}
}

func applyRef(scope *reactivity.Scope, el host.Node, value any) {
	switch fn := value.(type) {
	case func(host.Node):
		fn(el)
		if scope != nil {
			scope.OnDispose(func() { fn(nil) })
		}
	case reactivity.Signal[host.Node]:
		fn.Set(el)
		if scope != nil {
			var zero host.Node
			scope.OnDispose(func() { fn.Set(zero) })
		}
	}
}

func applyClass(h host.Host, scope *reactivity.Scope, el host.Node, value any) {
	if fn, ok := value.(func() any); ok {
		reactivity.CreateEffect(func() {
			h.SetClassName(el, formatPrimitive(fn()))
		})
		return
	}
	if r, ok := value.(fnode.Reactive); ok {
		reactivity.CreateEffect(func() {
			h.SetClassName(el, formatPrimitive(r.ReadAny()))
		})
		return
	}
	h.SetClassName(el, formatPrimitive(value))
	_ = scope
}

func applyStyle(h host.Host, scope *reactivity.Scope, el host.Node, value any) {
	switch v := value.(type) {
	case string:
		// A plain string is assigned directly via the "style" attribute.
		h.SetAttribute(el, "style", v)
	case map[string]any:
		for prop, pv := range v {
			setStyleValue(h, el, prop, pv)
		}
	case func() any:
		reactivity.CreateEffect(func() {
			applyStyleResult(h, el, v())
		})
	default:
		if r, ok := value.(fnode.Reactive); ok {
			reactivity.CreateEffect(func() {
				applyStyleResult(h, el, r.ReadAny())
			})
		}
	}
	_ = scope
}

func applyStyleResult(h host.Host, el host.Node, v any) {
	switch t := v.(type) {
	case string:
		h.SetAttribute(el, "style", t)
	case map[string]any:
		for prop, pv := range t {
			setStyleValue(h, el, prop, pv)
		}
	}
}

func setStyleValue(h host.Host, el host.Node, prop string, value any) {
	switch v := value.(type) {
	case string:
		h.SetStyleProperty(el, kebabCase(prop), v)
	case float64:
		h.SetStyleProperty(el, kebabCase(prop), numericStyleValue(prop, v))
	case int:
		h.SetStyleProperty(el, kebabCase(prop), numericStyleValue(prop, float64(v)))
	case nil:
		h.RemoveStyleProperty(el, kebabCase(prop))
	}
}

func numericStyleValue(prop string, v float64) string {
	n := strconv.FormatFloat(v, 'g', -1, 64)
	if unitlessStyleProps[prop] {
		return n
	}
	return n + "px"
}

// kebabCase converts a camelCase CSS property name (e.g. "backgroundColor")
// into its kebab-case CSS form ("background-color").
func kebabCase(s string) string {
	var sb strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// applyAttr sets a plain attribute, wrapping it in an effect if value is
// a reactive position (spec.md §4.4 step 5): a function or signal
// producing booleans is treated specially — false/nil means "do not
// set", true sets a valueless boolean attribute, anything else is
// stringified.
func applyAttr(h host.Host, scope *reactivity.Scope, el host.Node, name string, value any) {
	if fn, ok := value.(func() any); ok {
		reactivity.CreateEffect(func() {
			writeAttr(h, el, name, fn())
		})
		return
	}
	if r, ok := value.(fnode.Reactive); ok {
		reactivity.CreateEffect(func() {
			writeAttr(h, el, name, r.ReadAny())
		})
		return
	}
	writeAttr(h, el, name, value)
	_ = scope
}

func writeAttr(h host.Host, el host.Node, name string, value any) {
	switch v := value.(type) {
	case nil:
		h.RemoveAttribute(el, name)
	case bool:
		if v {
			h.SetAttribute(el, name, "")
		} else {
			h.RemoveAttribute(el, name)
		}
	default:
		h.SetAttribute(el, name, formatPrimitive(v))
	}
}
