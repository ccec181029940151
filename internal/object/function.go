package object

import (
	"fmt"

	"github.com/umpteen-lang/umpteen/internal/ast"
)

// Function is the shared surface of native and user-defined callables
// (spec.md §4.5): a name, a fixed arity, and a display form. Invocation
// itself is the interpreter's job (internal/interp), since a native
// function's effect and a user function's body execution both need access
// to interpreter state that this package does not depend on.
type Function interface {
	Value
	Name() string
	Arity() int
	Display() string
}

// NativeFunction wraps a builtin implemented in host code (spec.md §4.4's
// globals: print, printx, time, str, len, chr, ord).
type NativeFunction struct {
	FnName  string
	FnArity int
	Fn      func(args []Value) (Value, error)
}

func (n *NativeFunction) Tag() Tag       { return ObjectTag }
func (n *NativeFunction) Truthy() bool   { return true }
func (n *NativeFunction) Name() string   { return n.FnName }
func (n *NativeFunction) Arity() int     { return n.FnArity }
func (n *NativeFunction) Display() string {
	return fmt.Sprintf("<native fnc %s()>", n.FnName)
}
func (n *NativeFunction) String() string { return n.Display() }

// Call invokes the native function directly.
func (n *NativeFunction) Call(args []Value) (Value, error) {
	return n.Fn(args)
}

// UserFunction is a `fnc` declaration bound to a name (spec.md §3 Fnc,
// §4.5). It captures no lexical environment: per spec.md §9 the design is
// dynamically scoped, so the activation scope's parent is the caller's live
// current scope at call time, not the declaration site. Invocation is
// performed by internal/interp, which knows how to push that scope.
type UserFunction struct {
	FnName string
	Params []ast.Param
	Body   *ast.Block
}

func (f *UserFunction) Tag() Tag       { return ObjectTag }
func (f *UserFunction) Truthy() bool   { return true }
func (f *UserFunction) Name() string   { return f.FnName }
func (f *UserFunction) Arity() int     { return len(f.Params) }
func (f *UserFunction) Display() string {
	return fmt.Sprintf("<fnc %s()>", f.FnName)
}
func (f *UserFunction) String() string { return f.Display() }
