// Package observability provides logging and formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/truncate"

	"github.com/jonathan/sbom-report/internal/sbom"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		line = truncate.StringWithTail(line, boxWidth-4, "...")
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDocument outputs a human-readable summary of a parsed SBOM.
func (p *Printer) PrintDocument(doc *sbom.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder

	name := doc.Name
	if name == "" {
		name = "(unnamed)"
	}
	sb.WriteString(fmt.Sprintf("Name:          %s\n", name))
	if doc.SPDXVersion != nil {
		sb.WriteString(fmt.Sprintf("Version:       %s\n", *doc.SPDXVersion))
	}
	if doc.CreationInfo.Created != nil {
		sb.WriteString(fmt.Sprintf("Created:       %s\n", *doc.CreationInfo.Created))
	}
	sb.WriteString(fmt.Sprintf("Packages:      %d\n", len(doc.Packages)))
	sb.WriteString(fmt.Sprintf("Files:         %d\n", len(doc.Files)))
	sb.WriteString(fmt.Sprintf("Relationships: %d", len(doc.Relationships)))

	p.printBox("PARSED SBOM", sb.String())
}

// PrintPackages outputs the first packages of the document with their versions.
func (p *Printer) PrintPackages(doc *sbom.Document) {
	if doc == nil || len(doc.Packages) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(doc.Packages), maxItemsToShow)
	for i := 0; i < count; i++ {
		pkg := doc.Packages[i]
		sb.WriteString(fmt.Sprintf("  • %s", pkg.Name))
		if pkg.Version != nil {
			sb.WriteString(fmt.Sprintf(" %s", *pkg.Version))
		}
		if pkg.LicenseConcluded != nil && *pkg.LicenseConcluded != sbom.NoAssertion {
			sb.WriteString(fmt.Sprintf(" [%s]", *pkg.LicenseConcluded))
		}
		sb.WriteString("\n")
	}
	if len(doc.Packages) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Packages)-maxItemsToShow))
	}

	p.printBox("PACKAGES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintWarnings outputs the non-fatal notes collected while parsing.
func (p *Printer) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total warnings: %d\n\n", len(warnings)))
	for i, w := range warnings {
		sb.WriteString(fmt.Sprintf("%d. %s", i+1, w))
		if i < len(warnings)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("PARSE WARNINGS", sb.String())
}

// PrintOutput reports where the PDF was written.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintOutput(path string, size int) {
	fmt.Fprintf(p.out, "✓ Wrote %s (%d bytes)\n", path, size)
}
