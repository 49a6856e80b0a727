package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pengelbrecht/mathx/internal/calculator"
	"github.com/pengelbrecht/mathx/internal/point"
)

var mathutilCmd = &cobra.Command{
	Use:   "mathutil",
	Short: "Run the math-utils demo",
	Long: `Run the math-utils demo.

Prints the sum and difference of the two operands, then a point value.
With no flags this reproduces the classic fixture output.

Examples:
  # Classic fixture
  mx mathutil

  # Custom operands and point
  mx mathutil -a 20 -b 8 --point 1,2`,
	Args: cobra.NoArgs,
	RunE: runMathutil,
}

var (
	mathutilA     int
	mathutilB     int
	mathutilPoint string
)

func init() {
	mathutilCmd.Flags().IntVarP(&mathutilA, "a", "a", 10, "first operand")
	mathutilCmd.Flags().IntVarP(&mathutilB, "b", "b", 5, "second operand")
	mathutilCmd.Flags().StringVar(&mathutilPoint, "point", "3,4", "point coordinates as x,y")

	rootCmd.AddCommand(mathutilCmd)
}

func runMathutil(cmd *cobra.Command, args []string) error {
	p, err := parsePoint(mathutilPoint)
	if err != nil {
		return NewExitError(ExitUsage, "invalid --point: %v", err)
	}

	fmt.Printf("Sum: %d\n", calculator.Add(mathutilA, mathutilB))
	fmt.Printf("Difference: %d\n", calculator.Subtract(mathutilA, mathutilB))
	p.Fprint(os.Stdout)
	return nil
}

// parsePoint parses "x,y" into a Point.
func parsePoint(s string) (point.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return point.Point{}, fmt.Errorf("expected x,y, got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return point.Point{}, fmt.Errorf("invalid x coordinate %q", parts[0])
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return point.Point{}, fmt.Errorf("invalid y coordinate %q", parts[1])
	}
	return point.New(x, y), nil
}
