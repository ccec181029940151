package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "umpteen [file]",
	Short: "Umpteen interpreter",
	Long: `umpteen is a tree-walking interpreter for Umpteen, a small
dynamically-typed, expression-oriented scripting language.

Run a .um script with a file argument, or start an interactive REPL
with no arguments at all:

  umpteen script.um
  umpteen`,
	Args:    cobra.MaximumNArgs(1),
	Version: Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return startREPL()
		}
		return runFile(args[0])
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// main.go reports the error returned by Execute itself; cobra's own
	// error/usage printing would duplicate it.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}
