package reactivity

import "errors"

// IsDisposedScope reports whether err is (or wraps) an ErrDisposedScope —
// the ProgrammerError raised when code registers onto a dead scope.
func IsDisposedScope(err error) bool {
	var e *ErrDisposedScope
	return errors.As(err, &e)
}

// IsBatchError reports whether err is (or wraps) a BatchError — the
// aggregated UserCodeErrors raised by one or more effects during a batch
// drain (spec.md §7).
func IsBatchError(err error) bool {
	var e *BatchError
	return errors.As(err, &e)
}
