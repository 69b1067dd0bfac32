package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cwbudde/go-rec/pkg/rec"
)

// Color definitions for REPL output: results in yellow, diagnostics in
// red, informational messages in cyan.
var (
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	cyanColor   = color.New(color.FgCyan)
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Long: `Start an interactive rec session.

Lines starting with def (and their indented body lines) accumulate
function definitions. A line of the form

  <function> <int> <int> ...

compiles the accumulated definitions and dispatches the named function
with the given integer arguments.

Commands:
  .show   print the accumulated definitions
  .clear  discard the accumulated definitions
  .exit   quit the session`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(_ *cobra.Command, _ []string) error {
	rl, err := readline.New("rec> ")
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	cyanColor.Printf("go-rec %s interactive session\n", Version)
	cyanColor.Println("Define functions with def, call them as: <function> <args...>")
	cyanColor.Println("Type '.exit' to quit")

	session := newReplSession()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF on Ctrl-D, readline.ErrInterrupt on Ctrl-C
			fmt.Println("bye")
			return nil
		}

		// Leading spaces are significant inside definitions; trim the
		// right-hand side only.
		line = strings.TrimRight(line, " \t\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		rl.SaveHistory(line)

		output, quit := session.handle(line)
		if quit {
			fmt.Println("bye")
			return nil
		}
		printReplOutput(output)
	}
}

func printReplOutput(output replOutput) {
	switch {
	case output.text == "":
	case output.isError:
		redColor.Println(output.text)
	case output.isResult:
		yellowColor.Println(output.text)
	default:
		fmt.Println(output.text)
	}
}

// replOutput is one response of the session to an input line.
type replOutput struct {
	text     string
	isResult bool
	isError  bool
}

// replSession accumulates function definitions and dispatches entry
// points against them. It is independent of readline so the input logic
// stays testable.
type replSession struct {
	defs []string
}

func newReplSession() *replSession {
	return &replSession{}
}

// handle processes one input line and returns the session's response.
func (s *replSession) handle(line string) (replOutput, bool) {
	switch {
	case line == ".exit":
		return replOutput{}, true

	case line == ".clear":
		s.defs = nil
		return replOutput{text: "definitions cleared"}, false

	case line == ".show":
		if len(s.defs) == 0 {
			return replOutput{text: "no definitions yet"}, false
		}
		return replOutput{text: strings.Join(s.defs, "\n")}, false

	case strings.HasPrefix(line, "def") || strings.HasPrefix(line, " "):
		s.defs = append(s.defs, line)
		return replOutput{}, false

	default:
		return s.dispatch(line), false
	}
}

// dispatch compiles the accumulated definitions and calls an entry point
// named by the first field with the remaining fields as integers.
func (s *replSession) dispatch(line string) replOutput {
	fields := strings.Fields(line)
	entry := fields[0]

	args := make([]int64, 0, len(fields)-1)
	for _, field := range fields[1:] {
		value, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return replOutput{text: fmt.Sprintf("argument %q is not an integer", field), isError: true}
		}
		args = append(args, value)
	}

	source := strings.Join(s.defs, "\n")
	result, err := rec.Evaluate(source, entry, args...)
	if err != nil {
		if scriptErr, ok := err.(*rec.Error); ok {
			return replOutput{text: scriptErr.Format(source, false), isError: true}
		}
		return replOutput{text: err.Error(), isError: true}
	}

	return replOutput{text: strconv.FormatInt(result, 10), isResult: true}
}
