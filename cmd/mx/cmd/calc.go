package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pengelbrecht/mathx/internal/calculator"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Run the named calculator demo",
	Long: `Run the named calculator demo.

Prints the calculator's name followed by the sum and product of the two
operands. With no flags this reproduces the classic fixture output.

Examples:
  # Classic fixture
  mx calc

  # Custom name and operands
  mx calc --name Office -a 7 -b 6`,
	Args: cobra.NoArgs,
	RunE: runCalc,
}

var (
	calcName string
	calcA    int
	calcB    int
)

func init() {
	calcCmd.Flags().StringVarP(&calcName, "name", "n", "MyCalc", "calculator display name")
	calcCmd.Flags().IntVarP(&calcA, "a", "a", 5, "first operand")
	calcCmd.Flags().IntVarP(&calcB, "b", "b", 3, "second operand")

	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, args []string) error {
	calc := calculator.New(calcName)

	calc.DisplayName(os.Stdout)
	fmt.Printf("%d + %d = %d\n", calcA, calcB, calc.Add(calcA, calcB))
	fmt.Printf("%d * %d = %d\n", calcA, calcB, calc.Multiply(calcA, calcB))
	return nil
}
