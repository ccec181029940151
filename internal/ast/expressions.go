package ast

import (
	"strconv"
	"strings"

	"github.com/umpteen-lang/umpteen/internal/token"
)

// NumberLiteral is a parsed numeric literal (spec.md §3 Literal(Value), the
// Number shape).
type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (n *NumberLiteral) expressionNode() {}
func (n *NumberLiteral) Pos() token.Position { return n.Token.Pos }
func (n *NumberLiteral) String() string      { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

// StringLiteral is a parsed string literal, already unescaped by the lexer.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (s *StringLiteral) expressionNode() {}
func (s *StringLiteral) Pos() token.Position { return s.Token.Pos }
func (s *StringLiteral) String() string      { return strconv.Quote(s.Value) }

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode() {}
func (b *BooleanLiteral) Pos() token.Position { return b.Token.Pos }
func (b *BooleanLiteral) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// EmptyLiteral is the `empty` literal.
type EmptyLiteral struct {
	Token token.Token
}

func (e *EmptyLiteral) expressionNode() {}
func (e *EmptyLiteral) Pos() token.Position { return e.Token.Pos }
func (e *EmptyLiteral) String() string      { return "empty" }

// ListLiteral is `[e1, e2, ...]`, producing a shared Object(List).
type ListLiteral struct {
	Token    token.Token // the '[' token
	Elements []Expression
}

func (l *ListLiteral) expressionNode() {}
func (l *ListLiteral) Pos() token.Position { return l.Token.Pos }
func (l *ListLiteral) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Binding is a name reference, optionally indexed (`name` or `name[index]`).
type Binding struct {
	Token token.Token // the IDENT token
	Name  string
	Index Expression // nil if not indexed
}

func (b *Binding) expressionNode() {}
func (b *Binding) Pos() token.Position { return b.Token.Pos }
func (b *Binding) String() string {
	if b.Index != nil {
		return b.Name + "[" + b.Index.String() + "]"
	}
	return b.Name
}

// Grouping is a parenthesized expression, kept as its own node so that
// printing can round-trip the explicit parens.
type Grouping struct {
	Token token.Token // the '(' token
	Inner Expression
}

func (g *Grouping) expressionNode() {}
func (g *Grouping) Pos() token.Position { return g.Token.Pos }
func (g *Grouping) String() string      { return "(" + g.Inner.String() + ")" }

// UnaryOp is `!expr` or `-expr`.
type UnaryOp struct {
	Token    token.Token // the operator token
	Operator UnaryOperator
	Operand  Expression
}

func (u *UnaryOp) expressionNode() {}
func (u *UnaryOp) Pos() token.Position { return u.Token.Pos }
func (u *UnaryOp) String() string      { return u.Operator.String() + u.Operand.String() }

// BinaryOp is a two-operand expression; arithmetic, comparison, and
// short-circuit logical operators all share this node.
type BinaryOp struct {
	Token    token.Token // the operator token
	Left     Expression
	Operator BinaryOperator
	Right    Expression
}

func (b *BinaryOp) expressionNode() {}
func (b *BinaryOp) Pos() token.Position { return b.Token.Pos }
func (b *BinaryOp) String() string {
	return "(" + b.Left.String() + " " + b.Operator.String() + " " + b.Right.String() + ")"
}

// Assign is `name = rhs`, `name[index] = rhs`, or a desugared compound
// assignment (`x op= e` becomes an Assign whose Rhs is the corresponding
// BinaryOp over a fresh Binding read of x). Compound records which
// compound operator produced it; the interpreter reads it for indexed
// targets so the index is evaluated once.
type Assign struct {
	Token    token.Token // the '=' (or compound) token
	Name     string
	Index    Expression // nil if not indexed
	Rhs      Expression
	Compound CompoundOp
}

func (a *Assign) expressionNode() {}
func (a *Assign) Pos() token.Position { return a.Token.Pos }
func (a *Assign) String() string {
	target := a.Name
	if a.Index != nil {
		target += "[" + a.Index.String() + "]"
	}
	return target + " = " + a.Rhs.String()
}

// Call is `callee(args...)`.
type Call struct {
	Token  token.Token // the '(' token
	Callee Expression
	Args   []Expression
}

func (c *Call) expressionNode() {}
func (c *Call) Pos() token.Position { return c.Token.Pos }
func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}
