package pipeline

import (
	"fmt"
	"strings"

	"github.com/jonathan/sbom-report/internal/sbom"
)

func summarize(doc *sbom.Document) string {
	parts := []string{
		pluralize(len(doc.Packages), "package"),
		pluralize(len(doc.Files), "file"),
		pluralize(len(doc.Relationships), "relationship"),
	}
	msg := "parsed " + strings.Join(parts, ", ")
	if n := len(doc.Warnings); n > 0 {
		msg += fmt.Sprintf(" (%s)", pluralize(n, "warning"))
	}
	return msg
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
