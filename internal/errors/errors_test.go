package errors

import (
	"strings"
	"testing"

	"github.com/umpteen-lang/umpteen/internal/token"
)

func TestFormatIncludesCaretAtColumn(t *testing.T) {
	source := "var x = 1 @ 2;"
	err := New(UnexpectedToken, token.Position{Line: 1, Column: 12}, "unexpected symbol '@'", source, "")

	out := err.Format(false)
	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Fatalf("expected at least 3 lines, got %d: %q", len(lines), out)
	}
	if !strings.Contains(lines[1], source) {
		t.Errorf("expected source line to appear, got %q", lines[1])
	}
	caretLine := lines[2]
	if strings.TrimLeft(caretLine, " ") != "^" {
		t.Errorf("expected caret line, got %q", caretLine)
	}
	if !strings.Contains(out, "unexpected symbol '@'") {
		t.Errorf("expected message in output, got %q", out)
	}
}

func TestFormatWithFileHeader(t *testing.T) {
	err := New(NoSuchVariable, token.Position{Line: 3, Column: 5}, "no such variable 'x'", "", "prog.umpt")
	out := err.Format(false)
	if !strings.HasPrefix(out, "Error in prog.umpt:3:5") {
		t.Errorf("expected file header, got %q", out)
	}
}

func TestFormatErrorsSingle(t *testing.T) {
	err := New(ExpectedExpression, token.Position{Line: 1, Column: 1}, "expected expression", "", "")
	out := FormatErrors([]*SourceError{err}, false)
	if out != err.Format(false) {
		t.Errorf("single-error FormatErrors should match Format() exactly")
	}
}

func TestFormatErrorsMultipleBanners(t *testing.T) {
	errs := []*SourceError{
		New(ExpectedExpression, token.Position{Line: 1, Column: 1}, "first", "", ""),
		New(ExpectedToken, token.Position{Line: 2, Column: 1}, "second", "", ""),
	}
	out := FormatErrors(errs, false)
	if !strings.Contains(out, "[Error 1 of 2]") || !strings.Contains(out, "[Error 2 of 2]") {
		t.Errorf("expected both banners, got %q", out)
	}
}

func TestKindIsDivergence(t *testing.T) {
	divergent := []Kind{BreakDivergence, ContinueDivergence, ReturnDivergence, ExitDivergence}
	for _, k := range divergent {
		if !k.IsDivergence() {
			t.Errorf("%s: expected IsDivergence() true", k)
		}
	}

	errKinds := []Kind{NoSuchVariable, IllegalBinaryOperation, TriedToCallNonFunction}
	for _, k := range errKinds {
		if k.IsDivergence() {
			t.Errorf("%s: expected IsDivergence() false", k)
		}
	}
}

func TestKindStringUnknown(t *testing.T) {
	var k Kind = 9999
	if got := k.String(); got != "UnknownError" {
		t.Errorf("String() = %q, want %q", got, "UnknownError")
	}
}
