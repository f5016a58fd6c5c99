package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/cfpl/internal/lexer"
	"github.com/cwbudde/cfpl/internal/token"
	"github.com/spf13/cobra"
)

var showPos bool

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a CFPL file or expression",
	Long: `Tokenize a CFPL program and print the resulting tokens, for debugging
the lexer.

Examples:
  cfpl lex program.cfpl
  cfpl lex -e "VAR x AS INT"
  cfpl lex --show-pos program.cfpl`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline source instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
}

func lexScript(cmd *cobra.Command, args []string) error {
	source, filename, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Fprintf(os.Stderr, "Tokenizing: %s\n", filename)
	}

	tokens, err := lexer.Tokenize(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("tokenization failed")
	}

	for _, tok := range tokens {
		printToken(tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return nil
}

func printToken(tok token.Token) {
	out := fmt.Sprintf("[%-10s] %q", tok.Type, tok.Literal)
	if showPos {
		out += fmt.Sprintf(" @%s", tok.Pos)
	}
	fmt.Println(out)
}
