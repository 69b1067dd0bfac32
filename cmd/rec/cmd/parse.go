package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-rec/pkg/rec"
)

var parseSkipCheck bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a rec program and display the function table",
	Long: `Parse rec source code and display the parsed functions in
source-shaped form.

If no file is provided, reads from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVar(&parseSkipCheck, "no-static-check", false, "skip the post-parse call-resolution pass")
}

func runParse(_ *cobra.Command, args []string) error {
	var input string

	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("error reading file: %w", err)
		}
		input = string(data)
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("error reading stdin: %w", err)
		}
		input = string(data)
	}

	engine, err := rec.New(rec.WithStaticCheck(!parseSkipCheck))
	if err != nil {
		return err
	}

	program, err := engine.Compile(input)
	if err != nil {
		reportScriptError(err, input)
		return fmt.Errorf("parsing failed")
	}

	fmt.Print(program.AST().String())
	return nil
}
