package reactivity

// currentEffect is the process-wide "active effect" pointer. A signal read
// consults it (together with trackingEnabled) to decide whether to
// subscribe the currently-running effect or computed tracker.
var currentEffect *effectImpl

// trackingEnabled is false for the duration of an Untrack call. Reads
// inside Untrack do not establish subscriptions even though an effect may
// be active.
var trackingEnabled = true

// Untrack runs fn with dependency tracking suspended: signal reads inside
// fn do not subscribe the currently-running effect. Writes are unaffected
// — they still propagate normally; only reads are affected.
func Untrack(fn func()) {
	prev := trackingEnabled
	trackingEnabled = false
	defer func() { trackingEnabled = prev }()
	fn()
}

// UntrackValue is the expression-oriented form of Untrack: it runs fn
// without tracking and returns its result.
func UntrackValue[T any](fn func() T) T {
	var v T
	Untrack(func() { v = fn() })
	return v
}

// trackRead registers dep as a dependency of the currently active effect,
// if tracking is enabled and an effect is active. It is the single choke
// point signals and computeds call from Get().
func trackRead(dep depNode) {
	e := currentEffect
	if e == nil || e.disposed || !trackingEnabled {
		return
	}
	e.deps[dep] = struct{}{}
	dep.addEffect(e)
}

// depNode is implemented by every reactive cell (signal or computed) that
// can hold a set of subscriber effects.
type depNode interface {
	addEffect(e *effectImpl)
	removeEffect(e *effectImpl)
}
