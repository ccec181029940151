package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/umpteen-lang/umpteen/internal/builtin"
	"github.com/umpteen-lang/umpteen/internal/errors"
	"github.com/umpteen-lang/umpteen/internal/interp"
	"github.com/umpteen-lang/umpteen/internal/lexer"
	"github.com/umpteen-lang/umpteen/internal/object"
	"github.com/umpteen-lang/umpteen/internal/parser"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run an Umpteen script file",
	Long: `Execute an Umpteen program from a file.

Examples:
  umpteen run script.um`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFile(args[0])
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// runFile implements spec.md §6's one-argument CLI contract: lex, parse,
// and execute filename as a single program, printing the result if
// non-Empty.
func runFile(filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	src := string(content)

	if verbose {
		fmt.Fprintf(os.Stderr, "Running %s (%d bytes)\n", filename, len(src))
	}

	// contextLines surrounding the offending line, since a file (unlike a
	// single REPL line) usually has enough surrounding source to make that
	// context useful.
	const contextLines = 2

	toks, lexErrs := lexer.Tokenize(src)
	if len(lexErrs) > 0 {
		sourceErrs := make([]*errors.SourceError, len(lexErrs))
		for i, le := range lexErrs {
			sourceErrs[i] = errors.New(errors.UnexpectedToken, le.Pos, le.Message, src, filename)
		}
		fmt.Fprint(os.Stderr, errors.FormatErrorsWithContext(sourceErrs, contextLines, true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("lexing failed with %d error(s)", len(lexErrs))
	}

	prog, err := parser.Parse(toks, src, filename)
	if err != nil {
		if se, ok := err.(*errors.SourceError); ok {
			fmt.Fprintln(os.Stderr, se.FormatWithContext(contextLines, true))
		} else {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		return fmt.Errorf("parsing failed")
	}

	in := interp.New()
	builtin.RegisterAll(in)

	result, err := in.Run(prog)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return fmt.Errorf("execution failed")
	}

	if result != object.Value(object.TheEmpty) {
		fmt.Println(result.String())
	}
	return nil
}
