package parser

import (
	"testing"

	"github.com/umpteen-lang/umpteen/internal/ast"
	"github.com/umpteen-lang/umpteen/internal/lexer"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, lexErrs := lexer.Tokenize(src)
	if len(lexErrs) > 0 {
		t.Fatalf("unexpected lex errors: %v", lexErrs)
	}
	prog, err := Parse(toks, src, "")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return prog
}

func TestParseVarDecl(t *testing.T) {
	prog := parse(t, "var x = 1;")
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	decl, ok := prog.Statements[0].(*ast.Declare)
	if !ok {
		t.Fatalf("expected *ast.Declare, got %T", prog.Statements[0])
	}
	if decl.Name != "x" {
		t.Errorf("Name = %q, want %q", decl.Name, "x")
	}
	if decl.Initializer == nil {
		t.Fatal("expected initializer")
	}
}

func TestParseLetWithoutInitializer(t *testing.T) {
	prog := parse(t, "let y;")
	decl := prog.Statements[0].(*ast.Declare)
	if decl.Initializer != nil {
		t.Errorf("expected nil initializer, got %v", decl.Initializer)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3;", "(1 + (2 * 3))"},
		{"(1 + 2) * 3;", "(((1 + 2)) * 3)"},
		{"1 + 2 + 3;", "((1 + 2) + 3)"},
		{"true || false && true;", "(true || (false && true))"},
		{"1 == 2 || 3 == 4;", "((1 == 2) || (3 == 4))"},
		{"1 < 2 == true;", "((1 < 2) == true)"},
		{"-1 + 2;", "(-1 + 2)"},
		{"!true == false;", "(!true == false)"},
	}
	for _, tt := range tests {
		prog := parse(t, tt.src)
		stmt := prog.Statements[0].(*ast.ExprStatement)
		if got := stmt.Expr.String(); got != tt.want {
			t.Errorf("%s: String() = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	prog := parse(t, "x = y = 1;")
	assign := prog.Statements[0].(*ast.ExprStatement).Expr.(*ast.Assign)
	if assign.Name != "x" {
		t.Fatalf("outer target = %q, want x", assign.Name)
	}
	inner, ok := assign.Rhs.(*ast.Assign)
	if !ok {
		t.Fatalf("expected nested Assign, got %T", assign.Rhs)
	}
	if inner.Name != "y" {
		t.Errorf("inner target = %q, want y", inner.Name)
	}
}

func TestCompoundAssignmentDesugars(t *testing.T) {
	prog := parse(t, "x += 1;")
	assign := prog.Statements[0].(*ast.ExprStatement).Expr.(*ast.Assign)
	if assign.Compound != ast.CompoundAdd {
		t.Errorf("Compound = %v, want CompoundAdd", assign.Compound)
	}
	bin, ok := assign.Rhs.(*ast.BinaryOp)
	if !ok {
		t.Fatalf("expected desugared BinaryOp rhs, got %T", assign.Rhs)
	}
	if bin.Operator != ast.Add {
		t.Errorf("Operator = %v, want Add", bin.Operator)
	}
	binding, ok := bin.Left.(*ast.Binding)
	if !ok || binding.Name != "x" {
		t.Errorf("expected left operand to read back x, got %#v", bin.Left)
	}
}

func TestIndexedAssignment(t *testing.T) {
	prog := parse(t, "a[0] = 1;")
	assign := prog.Statements[0].(*ast.ExprStatement).Expr.(*ast.Assign)
	if assign.Name != "a" {
		t.Fatalf("Name = %q, want a", assign.Name)
	}
	if assign.Index == nil {
		t.Fatal("expected non-nil Index")
	}
}

func TestInvalidAssignmentTargetIsError(t *testing.T) {
	toks, _ := lexer.Tokenize("1 = 2;")
	_, err := Parse(toks, "1 = 2;", "")
	if err == nil {
		t.Fatal("expected error for invalid assignment target")
	}
}

func TestListLiteral(t *testing.T) {
	prog := parse(t, "[1, 2, 3];")
	lit := prog.Statements[0].(*ast.ExprStatement).Expr.(*ast.ListLiteral)
	if len(lit.Elements) != 3 {
		t.Errorf("len(Elements) = %d, want 3", len(lit.Elements))
	}
}

func TestCallChaining(t *testing.T) {
	prog := parse(t, "f(1)(2);")
	outer := prog.Statements[0].(*ast.ExprStatement).Expr.(*ast.Call)
	if len(outer.Args) != 1 {
		t.Fatalf("outer args = %d, want 1", len(outer.Args))
	}
	inner, ok := outer.Callee.(*ast.Call)
	if !ok {
		t.Fatalf("expected nested Call, want %T", outer.Callee)
	}
	if len(inner.Args) != 1 {
		t.Errorf("inner args = %d, want 1", len(inner.Args))
	}
}

func TestCallArgLimitExcessDropped(t *testing.T) {
	src := "f("
	for i := 0; i < 260; i++ {
		if i > 0 {
			src += ", "
		}
		src += "1"
	}
	src += ");"
	prog := parse(t, src)
	call := prog.Statements[0].(*ast.ExprStatement).Expr.(*ast.Call)
	if len(call.Args) != maxCallArgs {
		t.Errorf("len(Args) = %d, want %d", len(call.Args), maxCallArgs)
	}
}

func TestIfElse(t *testing.T) {
	prog := parse(t, "if true { break; } else { continue; }")
	cond := prog.Statements[0].(*ast.Condition)
	if len(cond.Then.Statements) != 1 {
		t.Fatalf("then branch statements = %d, want 1", len(cond.Then.Statements))
	}
	if cond.Else == nil {
		t.Fatal("expected else branch")
	}
}

func TestLoopAndBreak(t *testing.T) {
	prog := parse(t, "loop { break; }")
	loop := prog.Statements[0].(*ast.Loop)
	if _, ok := loop.Body.Statements[0].(*ast.Break); !ok {
		t.Errorf("expected Break, got %T", loop.Body.Statements[0])
	}
}

func TestReturnWithAndWithoutValue(t *testing.T) {
	prog := parse(t, "fnc f() { return 1; } ")
	fn := prog.Statements[0].(*ast.Fnc)
	ret := fn.Body.Statements[0].(*ast.Return)
	if ret.Value == nil {
		t.Fatal("expected return value")
	}

	prog2 := parse(t, "fnc g() { return; }")
	fn2 := prog2.Statements[0].(*ast.Fnc)
	ret2 := fn2.Body.Statements[0].(*ast.Return)
	if ret2.Value != nil {
		t.Errorf("expected nil return value, got %v", ret2.Value)
	}
}

func TestFncSignatureConsumesTypeNames(t *testing.T) {
	prog := parse(t, "fnc add(a: Number, b: Number) -> Number { return a; }")
	fn := prog.Statements[0].(*ast.Fnc)
	if fn.Name != "add" {
		t.Errorf("Name = %q, want add", fn.Name)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("len(Params) = %d, want 2", len(fn.Params))
	}
	if fn.Params[0].TypeName != "Number" || fn.Params[1].TypeName != "Number" {
		t.Errorf("unexpected param type names: %#v", fn.Params)
	}
	if fn.ReturnType != "Number" {
		t.Errorf("ReturnType = %q, want Number", fn.ReturnType)
	}
}

func TestFncWithoutReturnType(t *testing.T) {
	prog := parse(t, "fnc noop() { exit; }")
	fn := prog.Statements[0].(*ast.Fnc)
	if fn.ReturnType != "" {
		t.Errorf("ReturnType = %q, want empty", fn.ReturnType)
	}
}

func TestGroupingRoundTrips(t *testing.T) {
	prog := parse(t, "(1 + 2);")
	stmt := prog.Statements[0].(*ast.ExprStatement)
	if got, want := stmt.Expr.String(), "((1 + 2))"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestMissingSemicolonIsError(t *testing.T) {
	toks, _ := lexer.Tokenize("var x = 1")
	_, err := Parse(toks, "var x = 1", "")
	if err == nil {
		t.Fatal("expected error for missing semicolon")
	}
}

func TestUnterminatedBlockIsError(t *testing.T) {
	toks, _ := lexer.Tokenize("if true { break;")
	_, err := Parse(toks, "if true { break;", "")
	if err == nil {
		t.Fatal("expected error for unterminated block")
	}
}

func TestExpectedExpressionError(t *testing.T) {
	toks, _ := lexer.Tokenize("var x = ;")
	_, err := Parse(toks, "var x = ;", "")
	if err == nil {
		t.Fatal("expected error for missing expression")
	}
}

func TestIndexedBindingInExpression(t *testing.T) {
	prog := parse(t, "print(a[1]);")
	call := prog.Statements[0].(*ast.ExprStatement).Expr.(*ast.Call)
	binding := call.Args[0].(*ast.Binding)
	if binding.Name != "a" || binding.Index == nil {
		t.Errorf("unexpected binding: %#v", binding)
	}
}
