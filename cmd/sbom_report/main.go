// Package main provides the entry point for the SBOM report server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "sbom_report",
	Short:         "SBOM to PDF report converter",
	Long:          "sbom_report turns SPDX JSON Software Bills of Materials into formatted, paginated PDF reports, from the command line or through an upload page.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
