package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/umpteen-lang/umpteen/internal/lexer"
	"github.com/umpteen-lang/umpteen/internal/parser"
)

var parseEvalExpr string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse an Umpteen file and print its AST",
	Long: `Parse an Umpteen program and print the resulting AST, reconstructed
from the parse tree's own String() form.

Examples:
  umpteen parse script.um
  umpteen parse -e "var x = 1 + 2;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func parseScript(cmd *cobra.Command, args []string) error {
	var input, filename string

	switch {
	case parseEvalExpr != "":
		input = parseEvalExpr
		filename = "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		input = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	toks, lexErrs := lexer.Tokenize(input)
	if len(lexErrs) > 0 {
		for _, e := range lexErrs {
			fmt.Fprintf(os.Stderr, "%s: %s @%d:%d\n", filename, e.Message, e.Pos.Line, e.Pos.Column)
		}
		return fmt.Errorf("lexing failed with %d error(s)", len(lexErrs))
	}

	prog, err := parser.Parse(toks, input, filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return fmt.Errorf("parsing failed")
	}

	fmt.Print(prog.String())
	return nil
}
