package cmd

import (
	"fmt"
	"os"

	"github.com/loxlang/golox/internal/errors"
	"github.com/loxlang/golox/internal/interp"
	"github.com/loxlang/golox/internal/parser"
	"github.com/loxlang/golox/internal/semantic"
	"github.com/spf13/cobra"
)

var (
	evalExpr  string
	dumpAST   bool
	typeCheck bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Lox script or expression",
	Long: `Execute a Lox program from a file or inline expression.

Examples:
  # Run a script file
  golox run script.lox

  # Evaluate an inline expression
  golox run -e "print 1 + 2;"

  # Run with AST dump (for debugging)
  golox run --dump-ast script.lox`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST (for debugging)")
	runCmd.Flags().BoolVar(&typeCheck, "semantic-check", true, "run the semantic validator before execution")
}

func runScript(_ *cobra.Command, args []string) error {
	var input, filename string

	switch {
	case evalExpr != "":
		input = evalExpr
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

	program, err := parser.Parse(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.FormatWithSource(err, input))
		return fmt.Errorf("parsing failed")
	}

	if dumpAST {
		fmt.Println("AST:")
		fmt.Println(program.String())
		fmt.Println()
	}

	if typeCheck {
		if err := semantic.Validate(program); err != nil {
			fmt.Fprintln(os.Stderr, errors.FormatWithSource(err, input))
			return fmt.Errorf("semantic analysis failed")
		}
	} else if verbose {
		fmt.Fprintln(os.Stderr, "Semantic validation disabled")
	}

	interpreter := interp.New(os.Stdout)
	if err := interpreter.Run(program); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
		return fmt.Errorf("execution failed")
	}

	return nil
}
