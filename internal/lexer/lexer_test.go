package lexer

import (
	"testing"

	"github.com/umpteen-lang/umpteen/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `var x = 5;
	x += 10;
	`

	tests := []struct {
		expectedLexeme string
		expectedKind   token.Kind
	}{
		{"var", token.VAR},
		{"x", token.IDENT},
		{"=", token.EQUAL},
		{"5", token.NUMBER},
		{";", token.SEMICOLON},
		{"x", token.IDENT},
		{"+=", token.PLUS_EQUAL},
		{"10", token.NUMBER},
		{";", token.SEMICOLON},
		{"", token.EOF},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - kind wrong. expected=%s, got=%s (lexeme=%q)",
				i, tt.expectedKind, tok.Kind, tok.Lexeme)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q", i, tt.expectedLexeme, tok.Lexeme)
		}
	}
}

func TestOperatorDisambiguation(t *testing.T) {
	tests := []struct {
		input string
		kinds []token.Kind
	}{
		{"=", []token.Kind{token.EQUAL}},
		{"==", []token.Kind{token.EQUAL_EQUAL}},
		{"=>", []token.Kind{token.FAT_ARROW}},
		{"-", []token.Kind{token.MINUS}},
		{"->", []token.Kind{token.THIN_ARROW}},
		{"-=", []token.Kind{token.MINUS_EQUAL}},
		{"!=", []token.Kind{token.BANG_EQUAL}},
		{"!", []token.Kind{token.BANG}},
		{"&&", []token.Kind{token.AND_AND}},
		{"||", []token.Kind{token.OR_OR}},
		{"<=", []token.Kind{token.LESS_EQUAL}},
		{">=", []token.Kind{token.GREATER_EQUAL}},
	}

	for _, tt := range tests {
		toks, errs := Tokenize(tt.input)
		if len(errs) != 0 {
			t.Fatalf("input %q: unexpected lex errors: %v", tt.input, errs)
		}
		if len(toks) != len(tt.kinds)+1 { // +1 for EOF
			t.Fatalf("input %q: expected %d tokens, got %d", tt.input, len(tt.kinds)+1, len(toks))
		}
		for i, k := range tt.kinds {
			if toks[i].Kind != k {
				t.Errorf("input %q: token %d: expected %s, got %s", tt.input, i, k, toks[i].Kind)
			}
		}
	}
}

func TestBareAmpersandAndPipeAreErrors(t *testing.T) {
	_, errs := Tokenize("a & b")
	if len(errs) != 1 {
		t.Fatalf("expected 1 lex error for bare '&', got %d: %v", len(errs), errs)
	}

	_, errs = Tokenize("a | b")
	if len(errs) != 1 {
		t.Fatalf("expected 1 lex error for bare '|', got %d: %v", len(errs), errs)
	}
}

func TestStringEscapes(t *testing.T) {
	toks, errs := Tokenize(`"a\nb\t\"c\\d"`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := "a\nb\t\"c\\d"
	if toks[0].Lexeme != want {
		t.Fatalf("expected %q, got %q", want, toks[0].Lexeme)
	}
}

func TestNumericLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"42", "42"},
		{"3.14", "3.14"},
		{"0.5", "0.5"},
		{"10.", "10"}, // trailing '.' with no digit after is not consumed
	}
	for _, tt := range tests {
		toks, _ := Tokenize(tt.input)
		if toks[0].Lexeme != tt.want {
			t.Errorf("input %q: expected lexeme %q, got %q", tt.input, tt.want, toks[0].Lexeme)
		}
	}
}

func TestLineCommentsAndBlockComments(t *testing.T) {
	input := "var x = 1; # a trailing comment\n### a block\ncomment spanning lines ###\nvar y = 2;"
	toks, errs := Tokenize(input)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	var kinds []token.Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	want := []token.Kind{
		token.VAR, token.IDENT, token.EQUAL, token.NUMBER, token.SEMICOLON,
		token.VAR, token.IDENT, token.EQUAL, token.NUMBER, token.SEMICOLON, token.EOF,
	}
	if len(kinds) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(kinds), kinds)
	}
	for i, k := range want {
		if kinds[i] != k {
			t.Errorf("token %d: expected %s, got %s", i, k, kinds[i])
		}
	}
}

func TestUnrecognizedSymbolSkippedNotFatal(t *testing.T) {
	toks, errs := Tokenize("var x = 1 @ var y = 2;")
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 lex error, got %d: %v", len(errs), errs)
	}
	last := toks[len(toks)-1]
	if last.Kind != token.EOF {
		t.Fatalf("expected scanning to continue to EOF, got last kind %s", last.Kind)
	}
}

func TestIdentifiersAreUnicodeAware(t *testing.T) {
	toks, errs := Tokenize("var Δx = 1;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if toks[1].Kind != token.IDENT || toks[1].Lexeme != "Δx" {
		t.Fatalf("expected identifier Δx, got %+v", toks[1])
	}
}

func TestPromoteTypeNames(t *testing.T) {
	toks, errs := Tokenize("fnc add(a: Number, b: Number) -> Number { return a; }")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	var typeNames []string
	for _, tok := range toks {
		if tok.Kind == token.TYPENAME {
			typeNames = append(typeNames, tok.Lexeme)
		}
	}
	want := []string{"Number", "Number", "Number"}
	if len(typeNames) != len(want) {
		t.Fatalf("expected type names %v, got %v", want, typeNames)
	}
	for i := range want {
		if typeNames[i] != want[i] {
			t.Errorf("type name %d: expected %q, got %q", i, want[i], typeNames[i])
		}
	}
}

func TestEOFIsAlwaysFinalToken(t *testing.T) {
	inputs := []string{"", "   ", "var x = 1;", "###unterminated", `"unterminated`}
	for _, in := range inputs {
		toks, _ := Tokenize(in)
		if toks[len(toks)-1].Kind != token.EOF {
			t.Errorf("input %q: final token kind = %s, want EOF", in, toks[len(toks)-1].Kind)
		}
	}
}

func TestLineColumnTracking(t *testing.T) {
	input := "var x\n= 1;"
	toks, _ := Tokenize(input)
	// "var" line 1 col 1
	if toks[0].Pos.Line != 1 || toks[0].Pos.Column != 1 {
		t.Errorf("var: expected 1:1, got %s", toks[0].Pos)
	}
	// "=" is on line 2
	for _, tok := range toks {
		if tok.Kind == token.EQUAL {
			if tok.Pos.Line != 2 {
				t.Errorf("=: expected line 2, got line %d", tok.Pos.Line)
			}
		}
	}
}
