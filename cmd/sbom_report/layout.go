package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/sbom-report/internal/layout"
	"github.com/jonathan/sbom-report/internal/sbom"
)

var layoutInput string

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the report layout of an SBOM as YAML",
	Long:  "Parses an SPDX JSON SBOM and prints the ordered sections that would be rendered, with wrapped cell text, as YAML. Useful for checking column wrapping without opening a PDF.",
	RunE:  runLayout,
}

func init() {
	layoutCmd.Flags().StringVarP(&layoutInput, "in", "i", "", "Path to the SBOM JSON file, or - for standard input (required)")
	_ = layoutCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(layoutCmd)
}

func runLayout(cmd *cobra.Command, _ []string) error {
	raw, err := readInput(cmd, layoutInput)
	if err != nil {
		return err
	}

	doc, err := sbom.Parse(raw)
	if err != nil {
		return err
	}
	return layout.DumpYAML(cmd.OutOrStdout(), layout.Build(doc))
}
