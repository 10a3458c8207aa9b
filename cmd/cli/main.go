package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mkjarl/gumshoe/cmd/cli/solver"
	"github.com/spf13/cobra"
)

func init() {
	// Missing .env is fine, the flags have workable defaults.
	_ = godotenv.Load()
	rootCmd.AddGroup(solver.Group)
	rootCmd.AddCommand(
		solver.Start,
		solver.Action,
		solver.Suggest,
		solver.Minimax,
		solver.Ask,
		solver.Accuse,
	)
}

var rootCmd = &cobra.Command{
	Use:  "gumshoe-cli",
	Long: `Command line utilities for Gumshoe https://github.com/mkjarl/gumshoe`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
