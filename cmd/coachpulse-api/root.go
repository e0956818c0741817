package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "coachpulse-api",
	Short: "CoachPulse analytics API server",
	Long:  `A REST API server computing attention scores, cohort insights, and weekly review summaries for coaches.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(serveCmd)
}

func main() {
	Execute()
}
