// Package repl implements Umpteen's interactive read-eval-print loop
// (spec.md §6): one line in, one evaluation, the non-Empty result printed.
//
// The original Rust prototype builds its REPL on rustyline, whose
// Readline::readline distinguishes a Ctrl-D end-of-file from a Ctrl-C
// interrupt (umpteen_error.rs wraps both as ReadlineError variants). Go has
// no equivalent readline library anywhere in the retrieval pack, so this
// package reproduces the same two-signal contract — EOF quits immediately,
// two consecutive interrupts quit — with a goroutine reading lines from
// stdin into a channel and a select loop watching os/signal for SIGINT,
// the teacher's own idiom for handling OS signals in a long-running CLI
// command.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/umpteen-lang/umpteen/internal/errors"
	"github.com/umpteen-lang/umpteen/internal/interp"
	"github.com/umpteen-lang/umpteen/internal/lexer"
	"github.com/umpteen-lang/umpteen/internal/object"
	"github.com/umpteen-lang/umpteen/internal/parser"
)

// DefaultHistoryFile is the history file name spec.md §6 names explicitly.
const DefaultHistoryFile = "umpteen_history"

// REPL reads lines from In, evaluates each against Interp, and writes
// prompts and results to Out.
type REPL struct {
	Interp      *interp.Interpreter
	In          io.Reader
	Out         io.Writer
	HistoryPath string
}

// New builds a REPL around in, reading from stdin and writing to in's own
// Stdout, with history persisted to DefaultHistoryFile in the working
// directory.
func New(in *interp.Interpreter) *REPL {
	return &REPL{
		Interp:      in,
		In:          os.Stdin,
		Out:         in.Stdout,
		HistoryPath: DefaultHistoryFile,
	}
}

// Run drives the loop until EOF, a second consecutive interrupt, or an
// unrecoverable read error. It never returns a non-nil error for ordinary
// quit conditions (spec.md's "Ctrl-D / two consecutive interrupts quit"
// describes a successful exit, not a failure).
func (r *REPL) Run() error {
	history, err := os.OpenFile(r.HistoryPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open history file %s: %w", r.HistoryPath, err)
	}
	defer history.Close()

	lines := make(chan string)
	readErrs := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(r.In)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			readErrs <- err
			return
		}
		close(lines)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	interrupted := false
	fmt.Fprint(r.Out, "> ")
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			interrupted = false
			fmt.Fprintln(history, line)
			r.evalLine(line)
			fmt.Fprint(r.Out, "> ")

		case <-sigCh:
			if interrupted {
				return nil
			}
			interrupted = true
			fmt.Fprintln(r.Out, "\n(press Ctrl-C again, or Ctrl-D, to quit)")
			fmt.Fprint(r.Out, "> ")

		case err := <-readErrs:
			return err
		}
	}
}

// evalLine lexes, parses, and runs a single line as a standalone program,
// reporting errors to Interp.Stderr and printing the result if non-Empty.
// It never returns an error: a bad line should not end the session.
func (r *REPL) evalLine(line string) {
	toks, lexErrs := lexer.Tokenize(line)
	if len(lexErrs) > 0 {
		sourceErrs := make([]*errors.SourceError, len(lexErrs))
		for i, le := range lexErrs {
			sourceErrs[i] = errors.New(errors.UnexpectedToken, le.Pos, le.Message, line, "<repl>")
		}
		fmt.Fprintln(r.Interp.Stderr, errors.FormatErrors(sourceErrs, false))
		return
	}

	prog, err := parser.Parse(toks, line, "<repl>")
	if err != nil {
		fmt.Fprintln(r.Interp.Stderr, err.Error())
		return
	}

	v, err := r.Interp.Run(prog)
	if err != nil {
		fmt.Fprintln(r.Interp.Stderr, err.Error())
		return
	}
	if v != object.Value(object.TheEmpty) {
		fmt.Fprintln(r.Out, v.String())
	}
}
