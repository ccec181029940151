package object

import "strings"

// List is Umpteen's one heap-allocated Object shape: an ordered, growable
// sequence of Values. A *List pointer is itself the shared-mutable cell
// (spec.md §3) — cloning a Value that holds a *List aliases the same
// backing slice, and the Go garbage collector reclaims the cell once every
// alias is gone, which is what the teacher's reference-counted destructor
// machinery exists to guarantee in a language without a collector.
type List struct {
	Elements []Value
}

// NewList wraps elems (left-to-right evaluated, per spec.md §4.3) in a new
// shared List cell.
func NewList(elems []Value) *List {
	return &List{Elements: elems}
}

func (l *List) Tag() Tag     { return ObjectTag }
func (l *List) Truthy() bool { return len(l.Elements) > 0 }

func (l *List) String() string {
	parts := make([]string, len(l.Elements))
	for i, v := range l.Elements {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Len returns the element count.
func (l *List) Len() int { return len(l.Elements) }

// Get returns the element at index i. The caller must range-check first
// (spec.md §4.3's CannotIndexWith/OutOfBoundsAccess are reported by the
// interpreter, not here).
func (l *List) Get(i int) Value {
	return l.Elements[i]
}

// Set writes v at index i, growing the list with Empty padding if
// i >= len(l.Elements) (spec.md I4).
func (l *List) Set(i int, v Value) {
	if i >= len(l.Elements) {
		grown := make([]Value, i+1)
		copy(grown, l.Elements)
		for j := len(l.Elements); j < i; j++ {
			grown[j] = TheEmpty
		}
		l.Elements = grown
	}
	l.Elements[i] = v
}
