package dom

import (
	"fmt"
	"reflect"

	"github.com/flexium-dev/flexium/fnode"
	"github.com/flexium-dev/flexium/host"
	"github.com/flexium-dev/flexium/internal/logx"
	"github.com/flexium-dev/flexium/reactivity"
)

// ReconciliationError is raised (as a log warning, not a panic — the
// core never aborts rendering over it, spec.md §7) when C5 detects a
// structural impossibility, such as two list items sharing the same
// explicit key in the same slot.
type ReconciliationError struct {
	Key any
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("dom: duplicate reconciliation key %v in the same slot; keeping the first occurrence", e.Key)
}

// positionalKey is the synthetic key assigned to a list item that has no
// explicit fnode.Node.Key. It is a distinct type from any value a user
// could supply as an explicit key, so a positional fallback can never
// collide with a real key (spec.md §4.5 "Policy on missing keys").
type positionalKey int

// record is one live entry in a keyed children slot.
type record struct {
	key      any
	node     host.Node
	scope    *reactivity.Scope
	typ      any        // the descriptor Type last mounted, for reuse-vs-replace checks
	lastNode *fnode.Node // last *fnode.Node spec applied, for the static-prop diff in updateReusedRecord
}

// listController implements spec.md §4.5: it keeps a keyed children slot
// of a single reactive position alive across re-evaluations, matching by
// key, moving/removing/inserting the minimum number of DOM nodes via an
// LIS computation, and disposing removed children's scopes.
//
// Limitation: each item spec is expected to mount to exactly one
// top-level host node (the overwhelmingly common case: a host tag or a
// primitive). For a Fragment-typed or slice item spec, mountOne tracks
// the node of its first child for move purposes (an empty one gets a
// placeholder comment); the remaining children are mounted after it and
// will not be physically relocated on reorder. This keeps
// the reconciler's bookkeeping free of any dependency on sibling
// traversal through the host, which the narrow Host interface does not
// expose.
type listController struct {
	h       host.Host
	scope   *reactivity.Scope // stable across runs; parent of every record's scope
	parent  host.Node
	anchor  host.Node // end-of-slot sentinel; new/moved tail nodes insert before it
	records []*record
}

func newListController(h host.Host, scope *reactivity.Scope, parent, anchor host.Node) *listController {
	return &listController{h: h, scope: scope, parent: parent, anchor: anchor}
}

// update reconciles the slot against a freshly evaluated spec list.
func (c *listController) update(specs []any) {
	oldRecords := c.records
	oldByKey := make(map[any]*record, len(oldRecords))
	for _, r := range oldRecords {
		oldByKey[r.key] = r
	}
	oldIndex := make(map[*record]int, len(oldRecords))
	for i, r := range oldRecords {
		oldIndex[r] = i
	}

	keys := assignKeys(specs)

	consumed := make(map[*record]bool, len(oldRecords))
	newRecords := make([]*record, len(specs))
	newIndexToOldIndex := make([]int, len(specs))

	for i, spec := range specs {
		key := keys[i]
		typ := specType(spec)

		if old, ok := oldByKey[key]; ok && !consumed[old] {
			consumed[old] = true
			if old.typ != typ {
				// Type changed under a reused key: tear down and remount,
				// same as a remove+insert (spec.md §4.5 "Descriptor equality").
				old.scope.Dispose()
				newRecords[i] = c.mountItem(key, typ, spec)
				newIndexToOldIndex[i] = -1
			} else {
				c.updateReusedRecord(old, spec)
				newRecords[i] = old
				newIndexToOldIndex[i] = oldIndex[old]
			}
			continue
		}

		newRecords[i] = c.mountItem(key, typ, spec)
		newIndexToOldIndex[i] = -1
	}

	// Removals: any old record whose key was not consumed, disposed in
	// their original list order (matches spec.md §8 scenario 4).
	for _, old := range oldRecords {
		if !consumed[old] {
			old.scope.Dispose()
		}
	}

	c.reposition(newRecords, newIndexToOldIndex)
	c.records = newRecords
}

// reposition performs the minimum-move walk: nodes whose relative order
// is already correct (the longest increasing subsequence of reused old
// indices) are left alone; every other node — new or out of place — is
// moved into its correct spot via a single InsertBefore call.
func (c *listController) reposition(newRecords []*record, newIndexToOldIndex []int) {
	keep := longestIncreasingSubsequence(newIndexToOldIndex)
	keepSet := make(map[int]bool, len(keep))
	for _, i := range keep {
		keepSet[i] = true
	}

	reference := c.anchor
	for i := len(newRecords) - 1; i >= 0; i-- {
		r := newRecords[i]
		if newIndexToOldIndex[i] == -1 || !keepSet[i] {
			c.h.InsertBefore(c.parent, r.node, reference)
		}
		reference = r.node
	}
}

// mountItem mounts spec to its single tracked node (mountOne — see
// listController's doc comment on the single-node-per-item restriction),
// owned by a fresh child scope of c.scope so per-item effects and DOM
// nodes are torn down independently of the rest of the slot. The node is
// appended to c.parent at this point; reposition walks every record
// (new and reused) afterward and moves whichever ones are out of place.
func (c *listController) mountItem(key, typ any, spec any) *record {
	itemScope := reactivity.NewScope(c.scope)

	var node host.Node
	reactivity.WithScope(itemScope, func() {
		node = mountOne(c.h, c.parent, nil, spec)
	})

	r := &record{key: key, node: node, scope: itemScope, typ: typ}
	if n, ok := spec.(*fnode.Node); ok {
		r.lastNode = n
	}
	return r
}

// updateReusedRecord re-applies a spec difference to a reused record
// directly, rather than waiting for an effect to notice it (spec.md
// §4.5: "a shallow pass that compares the new primitive prop to the
// old and writes differences to the DOM").
//
// A bare primitive item (no wrapping element) has no effect of its own
// to pick up the change, so its text node is written directly. A
// *fnode.Node of the same Type keeps its element and every per-binding
// effect installed at its original mount — those effects already track
// their own reactive props regardless of list position — but a plain,
// non-reactive prop value was only ever applied once, at mount time, so
// a changed static prop on the same key is diffed and written here.
func (c *listController) updateReusedRecord(r *record, spec any) {
	if n, isNode := spec.(*fnode.Node); isNode {
		diffStaticProps(c.h, r.node, r.lastNode, n)
		r.lastNode = n
		return
	}
	if _, isFn := spec.(func() any); isFn {
		return
	}
	if _, isReactive := spec.(fnode.Reactive); isReactive {
		return
	}
	c.h.SetText(r.node, formatPrimitive(spec))
}

// diffStaticProps compares old and new's non-reactive props and writes
// only what changed. A prop value that is a function or fnode.Reactive
// in either old or new is skipped: it is (or was) driven by its own
// effect installed at mount time, which already re-reads it on every
// signal change independent of list reconciliation. "ref" and event
// props are likewise left alone — reassigning them on every
// reconciliation would mean re-binding listeners the mount-time effect
// already owns.
func diffStaticProps(h host.Host, el host.Node, old, new_ *fnode.Node) {
	if new_ == nil {
		return
	}
	var oldProps fnode.Props
	if old != nil {
		oldProps = old.Props
	}
	newProps := new_.Props

	seen := make(map[string]bool, len(newProps)+len(oldProps))
	for name, newVal := range newProps {
		seen[name] = true
		if name == "ref" || isEventProp(name) {
			continue
		}
		if isReactiveValue(newVal) {
			continue
		}
		oldVal, had := oldProps[name]
		if had && isReactiveValue(oldVal) {
			continue
		}
		if had && reflect.DeepEqual(oldVal, newVal) {
			continue
		}
		writeStaticProp(h, el, name, newVal)
	}
	for name, oldVal := range oldProps {
		if seen[name] || name == "ref" || isEventProp(name) {
			continue
		}
		if isReactiveValue(oldVal) {
			continue
		}
		writeStaticProp(h, el, name, nil)
	}
}

func isReactiveValue(v any) bool {
	if _, ok := v.(func() any); ok {
		return true
	}
	_, ok := v.(fnode.Reactive)
	return ok
}

func writeStaticProp(h host.Host, el host.Node, name string, value any) {
	switch {
	case name == "class" || name == "className":
		if value == nil {
			h.SetClassName(el, "")
			return
		}
		h.SetClassName(el, formatPrimitive(value))
	case name == "style":
		applyStyleResult(h, el, value)
	default:
		writeAttr(h, el, name, value)
	}
}

func specType(spec any) any {
	if n, ok := spec.(*fnode.Node); ok {
		return n.Type
	}
	return fmt.Sprintf("%T", spec)
}

// assignKeys computes the key for every spec, in order. An explicit
// fnode.Node.Key wins; specs without one get a positionalKey(i). A
// spec that explicitly repeats an already-seen key is logged as a
// ReconciliationError and demoted to its positional key, per spec.md §7.
// A list containing any *fnode.Node without a key logs one warning per
// call that positional keys do not preserve identity across reorders.
func assignKeys(specs []any) []any {
	keys := make([]any, len(specs))
	seen := make(map[any]bool, len(specs))
	missing := false
	for i, spec := range specs {
		var key any = positionalKey(i)
		if n, ok := spec.(*fnode.Node); ok {
			if n.Key != nil {
				key = n.Key
			} else {
				missing = true
			}
		}
		if seen[key] {
			logx.Default.Warn((&ReconciliationError{Key: key}).Error())
			key = positionalKey(i)
		}
		seen[key] = true
		keys[i] = key
	}
	if missing {
		logx.Default.Warn("dom: list item(s) without an explicit key fall back to their position as key; their DOM identity is not preserved across reorders")
	}
	return keys
}

func (c *listController) disposeAll() {
	for _, r := range c.records {
		r.scope.Dispose()
	}
	c.records = nil
}

// longestIncreasingSubsequence returns the indices (into seq) of one
// longest strictly increasing subsequence, ignoring sentinel -1 entries
// entirely (a -1 marks a brand-new node with no old position to compare).
// Standard O(n log n) patience-sorting algorithm.
func longestIncreasingSubsequence(seq []int) []int {
	if len(seq) == 0 {
		return nil
	}
	tails := make([]int, 0, len(seq))   // indices into seq, tails[k] = index of smallest tail of an increasing run of length k+1
	prev := make([]int, len(seq))       // predecessor index for reconstruction
	for i := range prev {
		prev[i] = -1
	}

	for i, v := range seq {
		if v == -1 {
			continue
		}
		lo, hi := 0, len(tails)
		for lo < hi {
			mid := (lo + hi) / 2
			if seq[tails[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo > 0 {
			prev[i] = tails[lo-1]
		}
		if lo == len(tails) {
			tails = append(tails, i)
		} else {
			tails[lo] = i
		}
	}

	if len(tails) == 0 {
		return nil
	}
	result := make([]int, len(tails))
	k := tails[len(tails)-1]
	for i := len(tails) - 1; i >= 0; i-- {
		result[i] = k
		k = prev[k]
	}
	return result
}
