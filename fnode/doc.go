package fnode

// Reactive is implemented by reactivity.Signal[T] (both plain signals and
// computed values) so the renderer can treat one as a reactive child
// position without generic dispatch over T: "a ChildSpec that is a
// signal/computed is treated as a reactive position whose producer is
// the signal's read" (spec.md §3). ReadAny tracks the active effect the
// same way Get does.
type Reactive interface {
	ReadAny() any
}

// ChildSpec documents the sum type spec.md §3 describes for entries of
// Node.Children and for values returned from a reactive position's
// function. Go has no closed sum types, so the renderer dispatches on
// the dynamic type of an `any` at mount/update time. A valid ChildSpec is
// exactly one of:
//
//   - a primitive: string, any numeric kind, or bool
//   - nil (renders nothing, but still occupies a zero-width anchor)
//   - *fnode.Node (a descriptor, including one whose Type is Fragment)
//   - func() any (a reactive position: re-evaluated inside a tracking
//     effect; its return value is itself a ChildSpec, recursively)
//   - fnode.Reactive (a reactivity.Signal[T]; equivalent to
//     func() any wrapping sig.ReadAny)
//   - []any (flattened at mount time, each element itself a ChildSpec)
type ChildSpec = any
