package cmd

import (
	"github.com/spf13/cobra"

	"github.com/umpteen-lang/umpteen/internal/builtin"
	"github.com/umpteen-lang/umpteen/internal/interp"
	"github.com/umpteen-lang/umpteen/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Umpteen session",
	Long: `Start a read-eval-print loop: one line in, one evaluation, the
non-Empty result printed. Ctrl-D quits; two consecutive Ctrl-C quit.
History is appended to umpteen_history in the working directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startREPL()
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func startREPL() error {
	in := interp.New()
	builtin.RegisterAll(in)
	return repl.New(in).Run()
}
