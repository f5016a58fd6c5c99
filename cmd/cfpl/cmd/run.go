package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/cfpl/internal/lexer"
	"github.com/cwbudde/cfpl/internal/parser"
	"github.com/cwbudde/cfpl/pkg/cfpl"
	"github.com/spf13/cobra"
)

var (
	evalExpr   string
	inputCSV   string
	showVars   bool
	dumpASTRun bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a CFPL file or expression",
	Long: `Execute a CFPL program from a file or inline source.

Examples:
  # Run a script file
  cfpl run program.cfpl

  # Evaluate inline source
  cfpl run -e 'VAR x AS INT
START
OUTPUT: x
STOP'

  # Supply INPUT values up front
  cfpl run -i "5,10" program.cfpl

  # Print the final variable snapshot after execution
  cfpl run --vars program.cfpl`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading from file")
	runCmd.Flags().StringVarP(&inputCSV, "input", "i", "", "comma-separated values consumed by INPUT statements, in order")
	runCmd.Flags().BoolVar(&showVars, "vars", false, "print the final variable snapshot after execution")
	runCmd.Flags().BoolVar(&dumpASTRun, "dump-ast", false, "dump the parsed program before running")
}

func runScript(cmd *cobra.Command, args []string) error {
	source, filename, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Fprintf(os.Stderr, "Running: %s\n", filename)
	}

	var inputs []string
	if inputCSV != "" {
		inputs = strings.Split(inputCSV, ",")
		for i := range inputs {
			inputs[i] = strings.TrimSpace(inputs[i])
		}
	}

	if dumpASTRun {
		if dumpErr := dumpAST(source); dumpErr != nil {
			fmt.Fprintln(os.Stderr, dumpErr)
		}
	}

	engine := cfpl.New()
	result := engine.Run(source, inputs...)

	fmt.Print(result.Output)

	if !result.Success {
		if cerr, ok := cfpl.AsCFPLError(result.Error); ok {
			fmt.Fprintln(os.Stderr, cerr.Format(source))
		} else {
			fmt.Fprintln(os.Stderr, result.Error)
		}
		return fmt.Errorf("execution failed")
	}

	if showVars {
		fmt.Fprintln(os.Stderr, "--- variables ---")
		for _, name := range engine.VariableNames() {
			v := engine.GetVariables()[name]
			fmt.Fprintf(os.Stderr, "%s: %s = %s\n", name, v.Type, v.Value)
		}
	}

	return nil
}

func dumpAST(source string) error {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return err
	}
	program, err := parser.New(tokens).ParseProgram()
	if err != nil {
		return err
	}
	fmt.Println("AST:")
	fmt.Println(program.String())
	fmt.Println()
	return nil
}

func readSource(eval string, args []string) (source, filename string, err error) {
	if eval != "" {
		return eval, "<eval>", nil
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
