package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-rec/pkg/rec"
)

var (
	evalSource    string
	entryPoint    string
	entryArgs     []int64
	noStaticCheck bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a rec program",
	Long: `Parse and execute a rec program, dispatching an entry point with
integer arguments and printing the result.

Examples:
  # Run the main function of a program
  rec run program.rec

  # Dispatch a specific entry point with arguments
  rec run program.rec --entry fact --args 5

  # Evaluate inline source
  rec run -e $'def f x\n f = add x x' --entry f --args 21`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalSource, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().StringVar(&entryPoint, "entry", "main", "entry point function to dispatch")
	runCmd.Flags().Int64SliceVar(&entryArgs, "args", nil, "integer arguments passed to the entry point")
	runCmd.Flags().BoolVar(&noStaticCheck, "no-static-check", false, "skip the post-parse call-resolution pass")
}

func runScript(_ *cobra.Command, args []string) error {
	input, _, err := readInput(args)
	if err != nil {
		return err
	}

	engine, err := rec.New(rec.WithStaticCheck(!noStaticCheck))
	if err != nil {
		return err
	}
	if noStaticCheck && verbose {
		fmt.Fprintln(os.Stderr, "Static call resolution disabled")
	}

	program, err := engine.Compile(input)
	if err != nil {
		reportScriptError(err, input)
		return fmt.Errorf("compilation failed")
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Dispatching %s with %d argument(s)\n", entryPoint, len(entryArgs))
	}

	result, err := program.Call(entryPoint, entryArgs...)
	if err != nil {
		reportScriptError(err, input)
		return fmt.Errorf("execution failed")
	}

	fmt.Println(result)
	return nil
}

// readInput resolves the program text from the -e flag or a file argument.
func readInput(args []string) (input, filename string, err error) {
	if evalSource != "" {
		return evalSource, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}

// reportScriptError prints a script error with source context to stderr.
func reportScriptError(err error, source string) {
	if scriptErr, ok := err.(*rec.Error); ok {
		fmt.Fprintln(os.Stderr, scriptErr.Format(source, true))
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
