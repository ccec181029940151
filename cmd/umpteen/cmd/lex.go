package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/umpteen-lang/umpteen/internal/lexer"
)

var lexEvalExpr string

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize an Umpteen file or expression",
	Long: `Tokenize (lex) an Umpteen program and print the resulting tokens.

This command is useful for debugging the lexer and understanding how
Umpteen source code is tokenized.

Examples:
  # Tokenize a script file
  umpteen lex script.um

  # Tokenize an inline expression
  umpteen lex -e "var x = 42;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
}

func lexScript(cmd *cobra.Command, args []string) error {
	var input, filename string

	switch {
	case lexEvalExpr != "":
		input = lexEvalExpr
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
	for _, tok := range toks {
		fmt.Println(tok.String())
	}

	if len(lexErrs) > 0 {
		for _, e := range lexErrs {
			fmt.Fprintf(os.Stderr, "%s: %s @%d:%d\n", filename, e.Message, e.Pos.Line, e.Pos.Column)
		}
		return fmt.Errorf("found %d illegal token(s)", len(lexErrs))
	}
	return nil
}
