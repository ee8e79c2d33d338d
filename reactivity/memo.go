package reactivity

import "reflect"

// memoSignal is a derived, memoised signal. It behaves as a Signal
// downstream (Get/Peek) and, internally, as a subscriber upstream: a
// dedicated tracker effect recomputes its cached value lazily.
//
// The tracker is an ordinary effectImpl subscribed to whatever compute
// reads. On an upstream write the tracker is merely scheduled like any
// other effect — it does not recompute synchronously inside the write.
// When the drain reaches it, it recomputes and compares against the
// cached value; only a real change schedules the memo's own subscribers.
// This is what makes diamond dependencies glitch-free: the tracker
// always runs, and is always queued, before the downstream effects that
// consume the memo, because those effects were scheduled by the
// tracker's own change propagation, not by the raw upstream write.
type memoSignal[T any] struct {
	base    *baseSignal[T]
	compute func() T
	dirty   bool
	tracker *effectImpl
	owner   *Scope
}

// CreateMemo creates a memoised derivation. The first computation is
// deferred until the memo is first read. The memo (and the tracker
// effect backing it) is owned by the scope active at creation time
// (spec.md §3: "owned by the creating scope"), not by whatever scope
// happens to be active the first time something reads it — a memo
// first read from inside an effect's transient per-run scope must
// outlive that run, not be disposed alongside it.
func CreateMemo[T any](compute func() T) Signal[T] {
	return &memoSignal[T]{
		base:    &baseSignal[T]{subs: make(map[*effectImpl]struct{})},
		compute: compute,
		dirty:   true,
		owner:   currentScope,
	}
}

func (m *memoSignal[T]) ensureTracker() {
	if m.tracker != nil {
		return
	}
	e := &effectImpl{
		scope: m.owner,
		deps:  make(map[depNode]struct{}),
	}
	e.fn = func() func() {
		newVal := m.compute()
		if m.dirty {
			m.dirty = false
			m.base.value = newVal
			return nil
		}
		if !reflect.DeepEqual(m.base.value, newVal) {
			m.base.value = newVal
			scheduleAll(m.base.subs)
		}
		return nil
	}
	if m.owner != nil {
		m.owner.OnDispose(e.Dispose)
	}
	m.tracker = e
	e.run()
}

func (m *memoSignal[T]) Get() T {
	m.ensureTracker()
	trackRead(m.base)
	return m.base.value
}

func (m *memoSignal[T]) Peek() T {
	m.ensureTracker()
	return m.base.value
}

// Set allows a memo to be written directly, matching the Signal
// interface; a derived value is rarely written to, but nothing in the
// data model forbids it — it just forwards to the underlying cell like
// any other signal write and marks the tracker no longer dirty.
func (m *memoSignal[T]) Set(v T) {
	m.ensureTracker()
	if reflect.DeepEqual(m.base.value, v) {
		return
	}
	m.base.value = v
	m.dirty = false
	scheduleAll(m.base.subs)
}

func (m *memoSignal[T]) addEffect(e *effectImpl)    { m.base.addEffect(e) }
func (m *memoSignal[T]) removeEffect(e *effectImpl) { m.base.removeEffect(e) }

// ReadAny mirrors baseSignal.ReadAny — see its doc comment.
func (m *memoSignal[T]) ReadAny() any {
	return m.Get()
}
