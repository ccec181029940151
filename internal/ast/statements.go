package ast

import (
	"strings"

	"github.com/umpteen-lang/umpteen/internal/token"
)

// ExprStatement is an expression evaluated for effect; its value is
// discarded.
type ExprStatement struct {
	Token token.Token // the first token of the expression
	Expr  Expression
}

func (e *ExprStatement) statementNode() {}
func (e *ExprStatement) Pos() token.Position { return e.Token.Pos }
func (e *ExprStatement) String() string      { return e.Expr.String() + ";" }

// Declare is `var name;` or `var name = initializer;`. `let` shares the same
// node (the parser does not distinguish reassignability, per spec.md §3).
type Declare struct {
	Token       token.Token // the 'var'/'let' token
	Name        string
	Initializer Expression // nil if absent
}

func (d *Declare) statementNode() {}
func (d *Declare) Pos() token.Position { return d.Token.Pos }
func (d *Declare) String() string {
	if d.Initializer != nil {
		return "var " + d.Name + " = " + d.Initializer.String() + ";"
	}
	return "var " + d.Name + ";"
}

// Block is a brace-delimited statement sequence executed in its own
// enclosed scope.
type Block struct {
	Token      token.Token // the '{' token
	Statements []Statement
}

func (b *Block) statementNode() {}
func (b *Block) Pos() token.Position { return b.Token.Pos }
func (b *Block) String() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, s := range b.Statements {
		sb.WriteString("  ")
		sb.WriteString(strings.ReplaceAll(s.String(), "\n", "\n  "))
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// Condition is `if test { then } else { else }`; Else is nil when absent.
type Condition struct {
	Token token.Token // the 'if' token
	Test  Expression
	Then  *Block
	Else  *Block
}

func (c *Condition) statementNode() {}
func (c *Condition) Pos() token.Position { return c.Token.Pos }
func (c *Condition) String() string {
	var sb strings.Builder
	sb.WriteString("if ")
	sb.WriteString(c.Test.String())
	sb.WriteString(" ")
	sb.WriteString(c.Then.String())
	if c.Else != nil {
		sb.WriteString(" else ")
		sb.WriteString(c.Else.String())
	}
	return sb.String()
}

// Loop is an unbounded `loop { body }`, exited only via Break or a
// propagating divergence/error.
type Loop struct {
	Token token.Token // the 'loop' token
	Body  *Block
}

func (l *Loop) statementNode() {}
func (l *Loop) Pos() token.Position { return l.Token.Pos }
func (l *Loop) String() string      { return "loop " + l.Body.String() }

// Break raises a Break divergence, consumed by the nearest enclosing Loop.
type Break struct {
	Token token.Token
}

func (b *Break) statementNode() {}
func (b *Break) Pos() token.Position { return b.Token.Pos }
func (b *Break) String() string      { return "break;" }

// Continue raises a Continue divergence, consumed by the nearest enclosing
// Loop.
type Continue struct {
	Token token.Token
}

func (c *Continue) statementNode() {}
func (c *Continue) Pos() token.Position { return c.Token.Pos }
func (c *Continue) String() string      { return "continue;" }

// Return raises a Return divergence carrying Value (or Empty when Value is
// nil), consumed by the enclosing function invocation.
type Return struct {
	Token token.Token // the 'return' token
	Value Expression  // nil if bare `return;`
}

func (r *Return) statementNode() {}
func (r *Return) Pos() token.Position { return r.Token.Pos }
func (r *Return) String() string {
	if r.Value != nil {
		return "return " + r.Value.String() + ";"
	}
	return "return;"
}

// Exit raises an Exit divergence, unwinding to the program driver and
// terminating successfully.
type Exit struct {
	Token token.Token
}

func (e *Exit) statementNode() {}
func (e *Exit) Pos() token.Position { return e.Token.Pos }
func (e *Exit) String() string      { return "exit;" }

// Param is one (name, type-name) pair in a function signature. TypeName is
// recorded but never semantically enforced (spec.md §4.2, §9).
type Param struct {
	Name     string
	TypeName string
}

// Fnc declares a named function value in the current scope.
type Fnc struct {
	Token      token.Token // the 'fnc' token
	Name       string
	Params     []Param
	ReturnType string // TypeName after '->', may be empty
	Body       *Block
}

func (f *Fnc) statementNode() {}
func (f *Fnc) Pos() token.Position { return f.Token.Pos }
func (f *Fnc) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.Name + ": " + p.TypeName
	}
	var sb strings.Builder
	sb.WriteString("fnc ")
	sb.WriteString(f.Name)
	sb.WriteString("(")
	sb.WriteString(strings.Join(parts, ", "))
	sb.WriteString(")")
	if f.ReturnType != "" {
		sb.WriteString(" -> " + f.ReturnType)
	}
	sb.WriteString(" ")
	sb.WriteString(f.Body.String())
	return sb.String()
}
