package errors

// Kind discriminates Umpteen's error taxonomy (spec.md §7) so callers can
// branch on error class without string matching, the way the teacher's own
// `internal/interp` error catalog lets callers discriminate DWScript
// runtime errors by kind rather than message text.
type Kind int

const (
	// ParseError sub-kinds.
	UnexpectedEof Kind = iota
	ExpectedStatement
	ExpectedExpression
	ExpectedToken
	UnexpectedToken
	InvalidNumericLiteral
	IllegalBinaryOperation
	IllegalUnaryOperation
	InvalidAssignmentTarget

	// MemoryError sub-kinds.
	NoSuchVariable
	UninitializedAccess
	CannotIndex
	CannotIndexWith
	OutOfBoundsAccess
	VariableAlreadyDeclared

	// InterpretError sub-kinds.
	TriedToCallNonFunction
	IllegalDivergence
	WrongArity

	// Divergence: non-erroneous control flow, propagated as errors for
	// convenience (spec.md §7).
	BreakDivergence
	ContinueDivergence
	ReturnDivergence
	ExitDivergence
)

var kindNames = map[Kind]string{
	UnexpectedEof:           "UnexpectedEof",
	ExpectedStatement:       "ExpectedStatement",
	ExpectedExpression:      "ExpectedExpression",
	ExpectedToken:           "ExpectedToken",
	UnexpectedToken:         "UnexpectedToken",
	InvalidNumericLiteral:   "InvalidNumericLiteral",
	IllegalBinaryOperation:  "IllegalBinaryOperation",
	IllegalUnaryOperation:   "IllegalUnaryOperation",
	InvalidAssignmentTarget: "InvalidAssignmentTarget",
	NoSuchVariable:          "NoSuchVariable",
	UninitializedAccess:     "UninitializedAccess",
	CannotIndex:             "CannotIndex",
	CannotIndexWith:         "CannotIndexWith",
	OutOfBoundsAccess:       "OutOfBoundsAccess",
	VariableAlreadyDeclared: "VariableAlreadyDeclared",
	TriedToCallNonFunction:  "TriedToCallNonFunction",
	IllegalDivergence:       "IllegalDivergence",
	WrongArity:              "WrongArity",
	BreakDivergence:         "Break",
	ContinueDivergence:      "Continue",
	ReturnDivergence:        "Return",
	ExitDivergence:          "Exit",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UnknownError"
}

// IsDivergence reports whether k is one of the non-erroneous control-flow
// signals (spec.md §7/§9) rather than a genuine error.
func (k Kind) IsDivergence() bool {
	switch k {
	case BreakDivergence, ContinueDivergence, ReturnDivergence, ExitDivergence:
		return true
	default:
		return false
	}
}
