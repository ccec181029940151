package interp

import (
	"github.com/umpteen-lang/umpteen/internal/errors"
	"github.com/umpteen-lang/umpteen/internal/object"
)

// divergence is the non-erroneous control-flow signal of spec.md §7/§9:
// Break, Continue, Return(Value), Exit. It is propagated as a Go error
// (spec.md §7: "propagated as errors for convenience") rather than a panic,
// and is caught only at the two places spec.md names: Loop for
// Break/Continue, and user-function invocation for Return. It lives in
// internal/interp rather than internal/errors because Return must carry an
// object.Value, and internal/errors must not depend on internal/object.
type divergence struct {
	kind  errors.Kind // one of the four *Divergence Kind values
	value object.Value
}

func (d *divergence) Error() string {
	return "unhandled divergence: " + d.kind.String()
}

func breakDivergence() error    { return &divergence{kind: errors.BreakDivergence} }
func continueDivergence() error { return &divergence{kind: errors.ContinueDivergence} }
func exitDivergence() error     { return &divergence{kind: errors.ExitDivergence} }
func returnDivergence(v object.Value) error {
	return &divergence{kind: errors.ReturnDivergence, value: v}
}

// asDivergence reports whether err is a divergence of the given kind.
func asDivergence(err error, kind errors.Kind) (*divergence, bool) {
	d, ok := err.(*divergence)
	if !ok || d.kind != kind {
		return nil, false
	}
	return d, true
}
