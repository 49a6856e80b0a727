package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pengelbrecht/mathx/internal/expr"
)

var evalCmd = &cobra.Command{
	Use:   "eval [expression ...]",
	Short: "Evaluate integer expressions",
	Long: `Evaluate integer expressions of the form "a op b" where op is +, - or *.

Each argument is one expression. With no arguments, expressions are read
from stdin, one per line (blank lines and # comments are skipped).

Examples:
  # Evaluate arguments
  mx eval "5 + 3" "10 - 5"

  # Evaluate a worksheet from stdin
  mx eval < sheet.mx

  # Output as JSON
  mx eval --json "5 * 3"`,
	RunE: runEval,
}

var evalJSON bool

func init() {
	evalCmd.Flags().BoolVar(&evalJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(evalCmd)
}

// evalOutput is the JSON output format for one evaluated expression.
type evalOutput struct {
	Expr  string `json:"expr"`
	Value int    `json:"value"`
}

func runEval(cmd *cobra.Command, args []string) error {
	var exprs []expr.Expr

	if len(args) == 0 {
		parsed, err := expr.ParseReader(os.Stdin)
		if err != nil {
			return NewExitError(ExitUsage, "invalid input: %v", err)
		}
		exprs = parsed
	} else {
		for _, arg := range args {
			e, err := expr.Parse(arg)
			if err != nil {
				return NewExitError(ExitUsage, "invalid expression: %v", err)
			}
			exprs = append(exprs, e)
		}
	}

	if len(exprs) == 0 {
		return NewExitError(ExitUsage, "no expressions to evaluate")
	}

	enc := json.NewEncoder(os.Stdout)
	for _, e := range exprs {
		value := e.Eval()
		if evalJSON {
			if err := enc.Encode(evalOutput{Expr: e.String(), Value: value}); err != nil {
				return fmt.Errorf("failed to encode json: %w", err)
			}
			continue
		}
		fmt.Printf("%s = %d\n", e, value)
	}
	return nil
}
