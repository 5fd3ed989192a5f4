package connectivity

import "context"

// Checker reports whether the remote source is currently reachable.
type Checker interface {
	Connected(ctx context.Context) bool
}

// Static is a Checker with a fixed answer. Handy in tests and in wiring that
// wants to force the offline or online path.
type Static bool

// Connected implements Checker.
func (s Static) Connected(context.Context) bool {
	return bool(s)
}

// Func adapts a plain function into a Checker.
type Func func(ctx context.Context) bool

// Connected implements Checker.
func (f Func) Connected(ctx context.Context) bool {
	return f(ctx)
}
