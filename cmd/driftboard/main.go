package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "driftboard",
	Short: "Driftboard - project tracker client",
	Long:  `Command-line client for the Driftboard API: workspace and project membership, role-gated issue views, and estimate editing.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
