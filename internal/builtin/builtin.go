// Package builtin registers Umpteen's native functions into an
// Environment's globals scope (spec.md §4.4, §6).
package builtin

import (
	"fmt"
	"io"
	"time"

	"github.com/umpteen-lang/umpteen/internal/interp"
	"github.com/umpteen-lang/umpteen/internal/object"
)

// Register seeds env's globals with print, printx, time, str, len, chr,
// ord (spec.md §4.4). start is the instant `time()` measures elapsed
// seconds from; stdout/stderr are where print/printx/chr's diagnostic
// note are written.
func Register(env *interp.Environment, start time.Time, stdout, stderr io.Writer) {
	env.DeclareGlobal("print", &object.NativeFunction{
		FnName: "print", FnArity: 1,
		Fn: func(args []object.Value) (object.Value, error) {
			fmt.Fprintln(stdout, args[0].String())
			return object.TheEmpty, nil
		},
	})

	env.DeclareGlobal("printx", &object.NativeFunction{
		FnName: "printx", FnArity: 1,
		Fn: func(args []object.Value) (object.Value, error) {
			fmt.Fprint(stdout, args[0].String())
			return object.TheEmpty, nil
		},
	})

	env.DeclareGlobal("time", &object.NativeFunction{
		FnName: "time", FnArity: 0,
		Fn: func(args []object.Value) (object.Value, error) {
			return object.Number(time.Since(start).Seconds()), nil
		},
	})

	env.DeclareGlobal("str", &object.NativeFunction{
		FnName: "str", FnArity: 1,
		Fn: func(args []object.Value) (object.Value, error) {
			return object.String(args[0].String()), nil
		},
	})

	env.DeclareGlobal("len", &object.NativeFunction{
		FnName: "len", FnArity: 1,
		Fn: func(args []object.Value) (object.Value, error) {
			return object.Number(length(args[0])), nil
		},
	})

	env.DeclareGlobal("chr", &object.NativeFunction{
		FnName: "chr", FnArity: 1,
		Fn: func(args []object.Value) (object.Value, error) {
			n, ok := args[0].(object.Number)
			if !ok || n < 0 || n > 255 {
				fmt.Fprintf(stderr, "chr: argument out of range (0..255): %v\n", args[0])
				return object.TheEmpty, nil
			}
			return object.String(string([]byte{byte(n)})), nil
		},
	})

	env.DeclareGlobal("ord", &object.NativeFunction{
		FnName: "ord", FnArity: 1,
		Fn: func(args []object.Value) (object.Value, error) {
			s, ok := args[0].(object.String)
			if !ok || len(s) == 0 {
				return object.Number(0), nil
			}
			return object.Number(s[0]), nil
		},
	})
}

// RegisterAll registers the full native-function catalog onto in's own
// Environment, Start time, and Stdout/Stderr writers — the entry point
// internal/repl and cmd/umpteen use to build a ready-to-run Interpreter.
func RegisterAll(in *interp.Interpreter) {
	Register(in.Env, in.Start, in.Stdout, in.Stderr)
}

// length implements len(v)'s per-shape contract (spec.md §6): Empty→0,
// Boolean/Number→1, String→byte length, List→element count, Function→1.
func length(v object.Value) float64 {
	switch val := v.(type) {
	case object.Empty:
		return 0
	case object.Boolean, object.Number:
		return 1
	case object.String:
		return float64(len(val))
	case *object.List:
		return float64(val.Len())
	case object.Function:
		return 1
	default:
		return 0
	}
}
