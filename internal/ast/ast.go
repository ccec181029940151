// Package ast defines the Umpteen abstract syntax tree: the mutually
// recursive Expression and Statement variants produced by the parser and
// consumed by the interpreter.
package ast

import (
	"strings"

	"github.com/umpteen-lang/umpteen/internal/token"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	// Pos returns the source position of the node, for error reporting.
	Pos() token.Position

	// String renders the node for debugging.
	String() string
}

// Expression is any node that produces a Value when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action without itself producing a
// Value.
type Statement interface {
	Node
	statementNode()
}

// Program is the root of a parsed source file: a flat list of top-level
// statements.
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// UnaryOperator enumerates spec.md's two unary operators.
type UnaryOperator int

const (
	Not UnaryOperator = iota
	Negate
)

func (op UnaryOperator) String() string {
	switch op {
	case Not:
		return "!"
	case Negate:
		return "-"
	default:
		return "?"
	}
}

// BinaryOperator enumerates spec.md's binary operators.
type BinaryOperator int

const (
	Add BinaryOperator = iota
	Sub
	Mul
	Div
	Mod
	And
	Or
	Eq
	Neq
	Gt
	Ge
	Lt
	Le
)

func (op BinaryOperator) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	case And:
		return "&&"
	case Or:
		return "||"
	case Eq:
		return "=="
	case Neq:
		return "!="
	case Gt:
		return ">"
	case Ge:
		return ">="
	case Lt:
		return "<"
	case Le:
		return "<="
	default:
		return "?"
	}
}

// CompoundOp names the compound-assignment operator a desugared Assign node
// was parsed from (CompoundNone for a plain `=`). The interpreter uses it
// to evaluate an indexed target's index only once for `a[i] op= e`.
type CompoundOp int

const (
	CompoundNone CompoundOp = iota
	CompoundAdd
	CompoundSub
	CompoundMul
	CompoundDiv
	CompoundMod
)
