// Package main provides the entry point for the internship finder server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "internship_finder",
	Short: "Resume-driven job and internship finder",
	Long: `Internship Finder reads a PDF resume, detects known skills, suggests matching
jobs from a CSV catalog, and looks up related internships on listing sites.`,
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
