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
	Use:   "rec",
	Short: "rec interpreter",
	Long: `go-rec is a Go implementation of the rec toy language.

rec is a line-oriented imperative language with:
  - Integer variables with implicit-zero first reference
  - User-defined functions with a named return slot
  - Twelve builtin binary operators over variables
  - Indentation-scoped if and while blocks

Programs are parsed into a function table and executed by a
tree-walking evaluator; a named entry point is dispatched with
integer arguments and returns a single integer.`,
	Version: Version,
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

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
