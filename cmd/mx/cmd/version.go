package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of mx",
	Long:  `Print the version number of mx.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mx %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
