package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/cfpl/internal/lexer"
	"github.com/cwbudde/cfpl/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a CFPL file or expression and print its AST",
	Long: `Parse a CFPL program and print a textual rendering of the resulting
AST, for debugging the parser.

Examples:
  cfpl parse program.cfpl
  cfpl parse -e "VAR x AS INT"`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline source instead of reading from file")
}

func parseScript(_ *cobra.Command, args []string) error {
	source, _, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	tokens, err := lexer.Tokenize(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("tokenization failed")
	}

	program, err := parser.New(tokens).ParseProgram()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("parsing failed")
	}

	fmt.Println(program.String())
	return nil
}
