// Package interp implements Umpteen's scope-chain environment and
// tree-walking interpreter (spec.md §4.3, §4.4, §4.5).
package interp

import (
	"io"
	"math"
	"os"
	"time"

	"github.com/umpteen-lang/umpteen/internal/ast"
	"github.com/umpteen-lang/umpteen/internal/errors"
	"github.com/umpteen-lang/umpteen/internal/object"
	"github.com/umpteen-lang/umpteen/internal/token"
)

// Interpreter walks a parsed Program against an Environment, per spec.md
// §4.3's statement/expression case analysis.
type Interpreter struct {
	Env    *Environment
	Start  time.Time
	Stdout io.Writer
	Stderr io.Writer
}

// New creates an Interpreter with a fresh Environment. Native builtins are
// not registered here (see internal/builtin.Register) so that this package
// has no dependency on the builtin catalog.
func New() *Interpreter {
	return &Interpreter{
		Env:    NewEnvironment(),
		Start:  time.Now(),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes prog's statements against the Interpreter's Environment and
// returns the program's final Value (spec.md §4.3's top-level contract).
//
// A top-level Return divergence is consumed here and becomes the returned
// Value, matching spec.md §7 ("a top-level Return is consumed by the
// program driver and becomes the program's return value"). A top-level
// Exit divergence stops execution and is reported as success. Break and
// Continue reaching the top level are IllegalDivergence. Expression
// statements discard their value, so without a top-level Return the
// result is Empty.
func (in *Interpreter) Run(prog *ast.Program) (object.Value, error) {
	var result object.Value = object.TheEmpty
	for _, stmt := range prog.Statements {
		err := in.exec(stmt)
		if err == nil {
			continue
		}
		if d, ok := err.(*divergence); ok {
			switch d.kind {
			case errors.ReturnDivergence:
				return d.value, nil
			case errors.ExitDivergence:
				return result, nil
			default:
				return nil, errors.New(errors.IllegalDivergence, stmt.Pos(),
					"unhandled "+d.kind.String()+" outside loop or function", "", "")
			}
		}
		return nil, err
	}
	return result, nil
}

// exec executes one statement, per spec.md §4.3's case analysis.
func (in *Interpreter) exec(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.Declare:
		if err := in.Env.Declare(s.Pos(), s.Name); err != nil {
			return err
		}
		if s.Initializer != nil {
			val, err := in.eval(s.Initializer)
			if err != nil {
				return err
			}
			return in.Env.Assign(s.Pos(), s.Name, val)
		}
		return nil

	case *ast.ExprStatement:
		_, err := in.eval(s.Expr)
		return err

	case *ast.Block:
		return in.execBlock(s)

	case *ast.Condition:
		test, err := in.eval(s.Test)
		if err != nil {
			return err
		}
		if test.Truthy() {
			return in.execBlock(s.Then)
		}
		if s.Else != nil {
			return in.execBlock(s.Else)
		}
		return nil

	case *ast.Loop:
		id := in.Env.NewEnclosed()
		previous := in.Env.SetCurrent(id)
		defer in.Env.SetCurrent(previous)
		for {
			err := in.execStatements(s.Body.Statements)
			if err == nil {
				continue
			}
			if _, ok := asDivergence(err, errors.BreakDivergence); ok {
				return nil
			}
			if _, ok := asDivergence(err, errors.ContinueDivergence); ok {
				continue
			}
			return err
		}

	case *ast.Break:
		return breakDivergence()

	case *ast.Continue:
		return continueDivergence()

	case *ast.Return:
		if s.Value == nil {
			return returnDivergence(object.TheEmpty)
		}
		val, err := in.eval(s.Value)
		if err != nil {
			return err
		}
		return returnDivergence(val)

	case *ast.Exit:
		return exitDivergence()

	case *ast.Fnc:
		if err := in.Env.Declare(s.Pos(), s.Name); err != nil {
			return err
		}
		fn := &object.UserFunction{FnName: s.Name, Params: s.Params, Body: s.Body}
		return in.Env.Assign(s.Pos(), s.Name, fn)

	default:
		return errors.New(errors.ExpectedStatement, stmt.Pos(), "unknown statement kind", "", "")
	}
}

// execBlock creates a new enclosed scope parented to current, swaps it in,
// runs statements, and restores the previous current pointer on every exit
// path including error/divergence propagation (spec.md §4.3 Block, P3).
func (in *Interpreter) execBlock(block *ast.Block) error {
	id := in.Env.NewEnclosed()
	previous := in.Env.SetCurrent(id)
	defer in.Env.SetCurrent(previous)
	return in.execStatements(block.Statements)
}

func (in *Interpreter) execStatements(stmts []ast.Statement) error {
	for _, stmt := range stmts {
		if err := in.exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// eval computes expr's Value, per spec.md §4.3's expression case analysis.
func (in *Interpreter) eval(expr ast.Expression) (object.Value, error) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return object.Number(e.Value), nil

	case *ast.StringLiteral:
		return object.String(e.Value), nil

	case *ast.BooleanLiteral:
		return object.Boolean(e.Value), nil

	case *ast.EmptyLiteral:
		return object.TheEmpty, nil

	case *ast.ListLiteral:
		elems := make([]object.Value, len(e.Elements))
		for i, el := range e.Elements {
			v, err := in.eval(el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return object.NewList(elems), nil

	case *ast.Grouping:
		return in.eval(e.Inner)

	case *ast.UnaryOp:
		return in.evalUnary(e)

	case *ast.BinaryOp:
		return in.evalBinary(e)

	case *ast.Binding:
		return in.evalBinding(e)

	case *ast.Assign:
		return in.evalAssign(e)

	case *ast.Call:
		return in.evalCall(e)

	default:
		return nil, errors.New(errors.ExpectedExpression, expr.Pos(), "unknown expression kind", "", "")
	}
}

func (in *Interpreter) evalUnary(e *ast.UnaryOp) (object.Value, error) {
	v, err := in.eval(e.Operand)
	if err != nil {
		return nil, err
	}
	switch e.Operator {
	case ast.Not:
		return object.Boolean(!v.Truthy()), nil
	case ast.Negate:
		n, ok := v.(object.Number)
		if !ok {
			return nil, errors.New(errors.IllegalUnaryOperation, e.Pos(),
				"cannot negate "+v.String(), "", "")
		}
		return -n, nil
	default:
		return nil, errors.New(errors.IllegalUnaryOperation, e.Pos(), "unknown unary operator", "", "")
	}
}

func (in *Interpreter) evalBinary(e *ast.BinaryOp) (object.Value, error) {
	left, err := in.eval(e.Left)
	if err != nil {
		return nil, err
	}

	// Logical And/Or short-circuit: evaluate left, return it unchanged if
	// it already determines the result, else evaluate and return right
	// (spec.md §4.3).
	switch e.Operator {
	case ast.And:
		if !left.Truthy() {
			return left, nil
		}
		return in.eval(e.Right)
	case ast.Or:
		if left.Truthy() {
			return left, nil
		}
		return in.eval(e.Right)
	}

	right, err := in.eval(e.Right)
	if err != nil {
		return nil, err
	}

	return in.applyBinaryOp(e, left, right)
}

// applyBinaryOp combines two already-evaluated operands per e.Operator
// (spec.md §4.3). Split out of evalBinary so evalAssign's indexed
// compound-assignment path can apply the operator to a list element it
// already read, rather than re-evaluating the index expression to read it
// a second time.
func (in *Interpreter) applyBinaryOp(e *ast.BinaryOp, left, right object.Value) (object.Value, error) {
	switch e.Operator {
	case ast.Eq:
		return object.Boolean(object.Equal(left, right)), nil
	case ast.Neq:
		return object.Boolean(!object.Equal(left, right)), nil
	}

	ln, lok := left.(object.Number)
	rn, rok := right.(object.Number)

	switch e.Operator {
	case ast.Add:
		if lok && rok {
			return ln + rn, nil
		}
		ls, lsok := left.(object.String)
		rs, rsok := right.(object.String)
		if lsok && rsok {
			return ls + rs, nil
		}
		return nil, in.illegalBinary(e, left, right)
	case ast.Sub:
		if !lok || !rok {
			return nil, in.illegalBinary(e, left, right)
		}
		return ln - rn, nil
	case ast.Mul:
		if !lok || !rok {
			return nil, in.illegalBinary(e, left, right)
		}
		return ln * rn, nil
	case ast.Div:
		if !lok || !rok {
			return nil, in.illegalBinary(e, left, right)
		}
		return ln / rn, nil
	case ast.Mod:
		if !lok || !rok {
			return nil, in.illegalBinary(e, left, right)
		}
		return object.Number(math.Mod(float64(ln), float64(rn))), nil
	case ast.Gt:
		if !lok || !rok {
			return nil, in.illegalBinary(e, left, right)
		}
		return object.Boolean(ln > rn), nil
	case ast.Ge:
		if !lok || !rok {
			return nil, in.illegalBinary(e, left, right)
		}
		return object.Boolean(ln >= rn), nil
	case ast.Lt:
		if !lok || !rok {
			return nil, in.illegalBinary(e, left, right)
		}
		return object.Boolean(ln < rn), nil
	case ast.Le:
		if !lok || !rok {
			return nil, in.illegalBinary(e, left, right)
		}
		return object.Boolean(ln <= rn), nil
	default:
		return nil, in.illegalBinary(e, left, right)
	}
}

func (in *Interpreter) illegalBinary(e *ast.BinaryOp, left, right object.Value) error {
	return errors.New(errors.IllegalBinaryOperation, e.Pos(),
		"illegal operands for "+e.Operator.String()+": "+left.String()+", "+right.String(), "", "")
}

func (in *Interpreter) evalBinding(e *ast.Binding) (object.Value, error) {
	val, err := in.Env.Get(e.Pos(), e.Name)
	if err != nil {
		return nil, err
	}
	if e.Index == nil {
		return val, nil
	}
	idx, err := in.eval(e.Index)
	if err != nil {
		return nil, err
	}
	idxNum, ok := idx.(object.Number)
	if !ok {
		return nil, errors.New(errors.CannotIndexWith, e.Pos(), "index must be a number", "", "")
	}
	switch target := val.(type) {
	case object.String:
		i := int(idxNum)
		if i < 0 || i >= len(target) {
			return nil, errors.New(errors.OutOfBoundsAccess, e.Pos(), "string index out of bounds", "", "")
		}
		return object.String(string([]byte{target[i]})), nil
	case *object.List:
		i := int(idxNum)
		if i < 0 || i >= target.Len() {
			return nil, errors.New(errors.OutOfBoundsAccess, e.Pos(), "list index out of bounds", "", "")
		}
		return target.Get(i), nil
	default:
		return nil, errors.New(errors.CannotIndex, e.Pos(), "cannot index "+val.String(), "", "")
	}
}

func (in *Interpreter) evalAssign(e *ast.Assign) (object.Value, error) {
	if e.Index == nil {
		rhs, err := in.eval(e.Rhs)
		if err != nil {
			return nil, err
		}
		if err := in.Env.Assign(e.Pos(), e.Name, rhs); err != nil {
			return nil, err
		}
		return object.TheEmpty, nil
	}

	// Indexed target: the index subexpression is evaluated exactly once
	// (spec.md §4.2), even when this is a desugared `a[i] op= e`. A plain
	// `a[i] = e` evaluates e.Rhs directly; a compound form reads the current
	// element off the already-resolved list instead of re-evaluating the
	// desugared Binding, which would evaluate the index a second time.
	idx, err := in.eval(e.Index)
	if err != nil {
		return nil, err
	}
	idxNum, ok := idx.(object.Number)
	if !ok {
		return nil, errors.New(errors.CannotIndexWith, e.Pos(), "index must be a number", "", "")
	}
	i := int(idxNum)
	if i < 0 {
		return nil, errors.New(errors.OutOfBoundsAccess, e.Pos(), "list index out of bounds", "", "")
	}

	target, err := in.Env.Get(e.Pos(), e.Name)
	if err != nil {
		return nil, err
	}
	list, ok := target.(*object.List)
	if !ok {
		return nil, errors.New(errors.CannotIndex, e.Pos(), "cannot index-assign "+target.String(), "", "")
	}

	var rhs object.Value
	if e.Compound == ast.CompoundNone {
		rhs, err = in.eval(e.Rhs)
		if err != nil {
			return nil, err
		}
	} else {
		bin, ok := e.Rhs.(*ast.BinaryOp)
		if !ok {
			return nil, errors.New(errors.IllegalBinaryOperation, e.Pos(), "malformed compound assignment", "", "")
		}
		if i >= list.Len() {
			return nil, errors.New(errors.OutOfBoundsAccess, e.Pos(), "list index out of bounds", "", "")
		}
		other, err := in.eval(bin.Right)
		if err != nil {
			return nil, err
		}
		rhs, err = in.applyBinaryOp(bin, list.Get(i), other)
		if err != nil {
			return nil, err
		}
	}

	list.Set(i, rhs)
	return object.TheEmpty, nil
}

func (in *Interpreter) evalCall(e *ast.Call) (object.Value, error) {
	callee, err := in.eval(e.Callee)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(object.Function)
	if !ok {
		return nil, errors.New(errors.TriedToCallNonFunction, e.Pos(),
			"cannot call "+callee.String(), "", "")
	}

	args := make([]object.Value, len(e.Args))
	for i, a := range e.Args {
		v, err := in.eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	return in.invoke(e.Pos(), fn, args)
}

// invoke dispatches a call to either a native or user-defined Function,
// per spec.md §4.5.
func (in *Interpreter) invoke(pos token.Position, fn object.Function, args []object.Value) (object.Value, error) {
	switch f := fn.(type) {
	case *object.NativeFunction:
		if len(args) != f.Arity() {
			return nil, errors.New(errors.WrongArity, pos,
				"wrong number of arguments calling "+f.Display(), "", "")
		}
		return f.Call(args)
	case *object.UserFunction:
		return in.callUser(pos, f, args)
	default:
		return nil, errors.New(errors.TriedToCallNonFunction, pos, "cannot call "+fn.String(), "", "")
	}
}

// callUser implements the dynamically-scoped call contract of spec.md
// §4.3/§4.5: push a new scope parented to the *caller's* current scope,
// bind parameters positionally, execute the body, and return either the
// value carried by a Return divergence or Empty on fall-through. Break and
// Continue escaping the body uncaught by any enclosing Loop are
// IllegalDivergence; Exit propagates past the call unchanged so it still
// reaches the program driver.
func (in *Interpreter) callUser(pos token.Position, fn *object.UserFunction, args []object.Value) (object.Value, error) {
	if len(args) != len(fn.Params) {
		return nil, errors.New(errors.WrongArity, pos,
			"wrong number of arguments calling "+fn.Display(), "", "")
	}

	id := in.Env.NewEnclosed()
	previous := in.Env.SetCurrent(id)
	defer in.Env.SetCurrent(previous)

	for i, p := range fn.Params {
		if err := in.Env.Declare(pos, p.Name); err != nil {
			return nil, err
		}
		if err := in.Env.Assign(pos, p.Name, args[i]); err != nil {
			return nil, err
		}
	}

	err := in.execStatements(fn.Body.Statements)
	if err == nil {
		return object.TheEmpty, nil
	}
	if d, ok := asDivergence(err, errors.ReturnDivergence); ok {
		return d.value, nil
	}
	if _, ok := asDivergence(err, errors.ExitDivergence); ok {
		return nil, err
	}
	if d, ok := err.(*divergence); ok {
		return nil, errors.New(errors.IllegalDivergence, pos,
			"unhandled "+d.kind.String()+" inside function "+fn.FnName, "", "")
	}
	return nil, err
}
