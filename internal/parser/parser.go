// Package parser turns a token sequence into an Umpteen AST via recursive
// descent with Pratt-style precedence climbing for binary expressions
// (spec.md §4.2).
package parser

import (
	"fmt"
	"strconv"

	"github.com/umpteen-lang/umpteen/internal/ast"
	"github.com/umpteen-lang/umpteen/internal/errors"
	"github.com/umpteen-lang/umpteen/internal/token"
)

// Precedence levels, loosest to tightest, matching spec.md §4.2:
// "assignment > logic-or > logic-and > equality > comparison > term >
// factor > unary > call > primary". Assignment is handled by its own
// recursive function rather than through this table (it is right-
// associative and its left-hand side must be a Binding), so the table
// starts at LogicOr.
const (
	_ int = iota
	LogicOr
	LogicAnd
	Equality
	Comparison
	Term
	Factor
)

// precedences maps a binary operator token kind to its climbing level.
var precedences = map[token.Kind]int{
	token.OR_OR:         LogicOr,
	token.AND_AND:       LogicAnd,
	token.EQUAL_EQUAL:   Equality,
	token.BANG_EQUAL:    Equality,
	token.LESS:          Comparison,
	token.LESS_EQUAL:    Comparison,
	token.GREATER:       Comparison,
	token.GREATER_EQUAL: Comparison,
	token.PLUS:          Term,
	token.MINUS:         Term,
	token.STAR:          Factor,
	token.SLASH:         Factor,
	token.PERCENT:       Factor,
}

var binaryOps = map[token.Kind]ast.BinaryOperator{
	token.OR_OR:         ast.Or,
	token.AND_AND:       ast.And,
	token.EQUAL_EQUAL:   ast.Eq,
	token.BANG_EQUAL:    ast.Neq,
	token.LESS:          ast.Lt,
	token.LESS_EQUAL:    ast.Le,
	token.GREATER:       ast.Gt,
	token.GREATER_EQUAL: ast.Ge,
	token.PLUS:          ast.Add,
	token.MINUS:         ast.Sub,
	token.STAR:          ast.Mul,
	token.SLASH:         ast.Div,
	token.PERCENT:       ast.Mod,
}

// compoundAssignOps maps a compound-assignment token to the CompoundOp tag
// and the BinaryOperator it desugars to (spec.md §4.2: `x op= e` becomes
// `x = x op e`).
var compoundAssignOps = map[token.Kind]struct {
	compound ast.CompoundOp
	op       ast.BinaryOperator
}{
	token.PLUS_EQUAL:    {ast.CompoundAdd, ast.Add},
	token.MINUS_EQUAL:   {ast.CompoundSub, ast.Sub},
	token.STAR_EQUAL:    {ast.CompoundMul, ast.Mul},
	token.SLASH_EQUAL:   {ast.CompoundDiv, ast.Div},
	token.PERCENT_EQUAL: {ast.CompoundMod, ast.Mod},
}

// maxCallArgs is spec.md §4.2's 255-argument call limit.
const maxCallArgs = 255

// Parser consumes a finished token sequence and produces a Program.
type Parser struct {
	toks   []token.Token
	pos    int
	source string
	file   string
}

// New creates a Parser over toks. source and file are used only for error
// rendering (the caret diagnostic needs the original text).
func New(toks []token.Token, source, file string) *Parser {
	return &Parser{toks: toks, source: source, file: file}
}

// Parse runs toks through New and returns the parsed Program, or the first
// error encountered (spec.md §4.2: "report with the offending token's
// location and stop").
func Parse(toks []token.Token, source, file string) (*ast.Program, error) {
	return New(toks, source, file).ParseProgram()
}

// ParseProgram parses the whole token sequence into a Program.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.atEnd() {
		stmt, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog, nil
}

func (p *Parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) atEnd() bool {
	return p.cur().Kind == token.EOF
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if !p.atEnd() {
		p.pos++
	}
	return t
}

func (p *Parser) check(k token.Kind) bool {
	return p.cur().Kind == k
}

func (p *Parser) match(k token.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if p.check(k) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorf(errors.ExpectedToken, p.cur(),
		"expected %s, got %s", k, p.cur().Kind)
}

func (p *Parser) errorf(kind errors.Kind, at token.Token, format string, args ...any) error {
	return errors.New(kind, at.Pos, fmt.Sprintf(format, args...), p.source, p.file)
}

// --- declarations & statements ---

func (p *Parser) parseDeclaration() (ast.Statement, error) {
	switch p.cur().Kind {
	case token.FNC:
		return p.parseFncDecl()
	case token.VAR, token.LET:
		return p.parseVarDecl()
	default:
		return p.parseStatement()
	}
}

func (p *Parser) parseVarDecl() (ast.Statement, error) {
	tok := p.advance() // 'var' or 'let'
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	decl := &ast.Declare{Token: tok, Name: nameTok.Lexeme}
	if p.match(token.EQUAL) {
		init, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		decl.Initializer = init
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseFncDecl() (ast.Statement, error) {
	tok := p.advance() // 'fnc'
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	var returnType string
	if p.match(token.THIN_ARROW) {
		typeTok, err := p.expect(token.TYPENAME)
		if err != nil {
			return nil, err
		}
		returnType = typeTok.Lexeme
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	return &ast.Fnc{Token: tok, Name: nameTok.Lexeme, Params: params, ReturnType: returnType, Body: body}, nil
}

func (p *Parser) parseParams() ([]ast.Param, error) {
	var params []ast.Param
	if p.check(token.RPAREN) {
		return params, nil
	}
	for {
		nameTok, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		typeTok, err := p.expect(token.TYPENAME)
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: nameTok.Lexeme, TypeName: typeTok.Lexeme})
		if !p.match(token.COMMA) {
			break
		}
	}
	return params, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.cur().Kind {
	case token.IF:
		return p.parseCondition()
	case token.LOOP:
		return p.parseLoop()
	case token.BREAK:
		tok := p.advance()
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.Break{Token: tok}, nil
	case token.CONTINUE:
		tok := p.advance()
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.Continue{Token: tok}, nil
	case token.RETURN:
		return p.parseReturn()
	case token.EXIT:
		tok := p.advance()
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.Exit{Token: tok}, nil
	case token.LBRACE:
		return p.parseBlock()
	default:
		return p.parseExprStatement()
	}
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	tok := p.advance() // 'return'
	stmt := &ast.Return{Token: tok}
	if !p.check(token.SEMICOLON) {
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Value = val
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseExprStatement() (ast.Statement, error) {
	tok := p.cur()
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.ExprStatement{Token: tok, Expr: expr}, nil
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	tok, err := p.expect(token.LBRACE)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	body.Token = tok
	return body, nil
}

// parseBlockBody parses statements up to (and consuming) the closing
// '}'; the caller has already consumed the opening '{'.
func (p *Parser) parseBlockBody() (*ast.Block, error) {
	block := &ast.Block{}
	for !p.check(token.RBRACE) {
		if p.atEnd() {
			return nil, p.errorf(errors.UnexpectedEof, p.cur(), "unexpected end of input, expected '}'")
		}
		stmt, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *Parser) parseCondition() (ast.Statement, error) {
	tok := p.advance() // 'if'
	test, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	cond := &ast.Condition{Token: tok, Test: test, Then: then}
	if p.match(token.ELSE) {
		elseBlock, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		cond.Else = elseBlock
	}
	return cond, nil
}

func (p *Parser) parseLoop() (ast.Statement, error) {
	tok := p.advance() // 'loop'
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Loop{Token: tok, Body: body}, nil
}

// --- expressions ---

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseAssignment()
}

// parseAssignment implements `assignment ::= logic_or (('='|'+='|'-='|'*='
// |'/='|'%=') assignment)?`, right-associative, desugaring compound
// assignment per spec.md §4.2.
func (p *Parser) parseAssignment() (ast.Expression, error) {
	left, err := p.parseBinary(LogicOr)
	if err != nil {
		return nil, err
	}

	opTok := p.cur()
	switch opTok.Kind {
	case token.EQUAL:
		p.advance()
		rhs, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return p.makeAssign(left, opTok, rhs, ast.CompoundNone)
	case token.PLUS_EQUAL, token.MINUS_EQUAL, token.STAR_EQUAL, token.SLASH_EQUAL, token.PERCENT_EQUAL:
		desugar := compoundAssignOps[opTok.Kind]
		p.advance()
		rhs, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		binding, ok := left.(*ast.Binding)
		if !ok {
			return nil, p.errorf(errors.InvalidAssignmentTarget, opTok,
				"invalid assignment target for %q", opTok.Lexeme)
		}
		rhs = &ast.BinaryOp{
			Token:    opTok,
			Left:     &ast.Binding{Token: binding.Token, Name: binding.Name, Index: binding.Index},
			Operator: desugar.op,
			Right:    rhs,
		}
		return p.makeAssign(left, opTok, rhs, desugar.compound)
	default:
		return left, nil
	}
}

func (p *Parser) makeAssign(target ast.Expression, opTok token.Token, rhs ast.Expression, compound ast.CompoundOp) (ast.Expression, error) {
	binding, ok := target.(*ast.Binding)
	if !ok {
		return nil, p.errorf(errors.InvalidAssignmentTarget, opTok,
			"invalid assignment target for %q", opTok.Lexeme)
	}
	return &ast.Assign{Token: opTok, Name: binding.Name, Index: binding.Index, Rhs: rhs, Compound: compound}, nil
}

// parseBinary is the Pratt precedence-climbing loop over
// or/and/equality/comparison/term/factor, all left-associative.
func (p *Parser) parseBinary(minPrec int) (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		prec, ok := precedences[p.cur().Kind]
		if !ok || prec < minPrec {
			return left, nil
		}
		opTok := p.advance()
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Token: opTok, Left: left, Operator: binaryOps[opTok.Kind], Right: right}
	}
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	switch p.cur().Kind {
	case token.BANG:
		tok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Token: tok, Operator: ast.Not, Operand: operand}, nil
	case token.MINUS:
		tok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Token: tok, Operator: ast.Negate, Operand: operand}, nil
	default:
		return p.parseCall()
	}
}

// parseCall implements `call ::= primary ('(' args? ')')*`.
func (p *Parser) parseCall() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.check(token.LPAREN) {
		tok := p.advance()
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		expr = &ast.Call{Token: tok, Callee: expr, Args: args}
	}
	return expr, nil
}

func (p *Parser) parseArgs() ([]ast.Expression, error) {
	var args []ast.Expression
	if p.check(token.RPAREN) {
		return args, nil
	}
	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if len(args) < maxCallArgs {
			args = append(args, arg)
		}
		// beyond maxCallArgs the excess argument is parsed (so the cursor
		// stays in sync) and dropped from the call; parsing continues. No
		// diagnostic is produced for the dropped arguments.
		if !p.match(token.COMMA) {
			break
		}
	}
	return args, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.cur()
	switch tok.Kind {
	case token.NUMBER:
		p.advance()
		val, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, p.errorf(errors.InvalidNumericLiteral, tok, "invalid numeric literal %q", tok.Lexeme)
		}
		return &ast.NumberLiteral{Token: tok, Value: val}, nil
	case token.STRING:
		p.advance()
		return &ast.StringLiteral{Token: tok, Value: tok.Lexeme}, nil
	case token.TRUE:
		p.advance()
		return &ast.BooleanLiteral{Token: tok, Value: true}, nil
	case token.FALSE:
		p.advance()
		return &ast.BooleanLiteral{Token: tok, Value: false}, nil
	case token.EMPTY:
		p.advance()
		return &ast.EmptyLiteral{Token: tok}, nil
	case token.IDENT:
		p.advance()
		binding := &ast.Binding{Token: tok, Name: tok.Lexeme}
		if p.match(token.LBRACKET) {
			idx, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBRACKET); err != nil {
				return nil, err
			}
			binding.Index = idx
		}
		return binding, nil
	case token.LPAREN:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return &ast.Grouping{Token: tok, Inner: inner}, nil
	case token.LBRACKET:
		p.advance()
		list := &ast.ListLiteral{Token: tok}
		if !p.check(token.RBRACKET) {
			for {
				el, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				list.Elements = append(list.Elements, el)
				if !p.match(token.COMMA) {
					break
				}
			}
		}
		if _, err := p.expect(token.RBRACKET); err != nil {
			return nil, err
		}
		return list, nil
	default:
		return nil, p.errorf(errors.ExpectedExpression, tok, "expected expression, got %s", tok.Kind)
	}
}
