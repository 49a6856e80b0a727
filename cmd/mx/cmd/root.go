// Package cmd implements the mx command tree.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "mx",
	Short: "A small arithmetic workbench",
	Long: `mx is a small arithmetic workbench.

It evaluates simple integer expressions, runs the classic calculator and
math-utils demos, and can watch a worksheet file and re-evaluate it live.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree and returns the process exit code.
func Execute(args []string) int {
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			return exitErr.Code
		}
		fmt.Fprintln(os.Stderr, err)
		return ExitGeneric
	}
	return ExitSuccess
}
