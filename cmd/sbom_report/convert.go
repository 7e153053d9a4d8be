package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/sbom-report/internal/observability"
	"github.com/jonathan/sbom-report/internal/pipeline"
)

var (
	convertInput    string
	convertOutput   string
	convertPortrait bool
	convertVerbose  bool
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert an SBOM JSON file to a PDF report",
	Long:  "Parses an SPDX JSON SBOM, lays out its metadata, packages, files and relationships, and writes a paginated PDF report.",
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertInput, "in", "i", "", "Path to the SBOM JSON file, or - for standard input (required)")
	convertCmd.Flags().StringVarP(&convertOutput, "out", "o", "", "Path to write the PDF report (required)")
	convertCmd.Flags().BoolVar(&convertPortrait, "portrait", false, "Use portrait pages instead of landscape")
	convertCmd.Flags().BoolVarP(&convertVerbose, "verbose", "v", false, "Print a summary of the parsed SBOM")

	_ = convertCmd.MarkFlagRequired("in")
	_ = convertCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, _ []string) error {
	raw, err := readInput(cmd, convertInput)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	opts := pipeline.DefaultOptions()
	opts.Render.Portrait = convertPortrait
	if convertVerbose {
		opts.OnProgress = func(e pipeline.ProgressEvent) {
			if e.Stage != pipeline.StageParse {
				return
			}
			printer.PrintDocument(e.Document)
			printer.PrintPackages(e.Document)
			printer.PrintWarnings(e.Warnings)
		}
	}

	pdf, err := pipeline.ConvertWithOptions(raw, opts)
	if err != nil {
		return err
	}

	if err := os.WriteFile(convertOutput, pdf, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	printer.PrintOutput(convertOutput, len(pdf))
	return nil
}
