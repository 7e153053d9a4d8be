// Package pipeline converts SBOM JSON into a PDF report by running the parser, the layout
// builder and the renderer in sequence.
package pipeline

import (
	"time"

	"github.com/jonathan/sbom-report/internal/layout"
	"github.com/jonathan/sbom-report/internal/rendering"
	"github.com/jonathan/sbom-report/internal/sbom"
)

// Stage names a conversion step.
type Stage string

const (
	StageParse  Stage = "parse"
	StageLayout Stage = "layout"
	StageRender Stage = "render"
)

// ProgressEvent is emitted after each stage completes
type ProgressEvent struct {
	Stage    Stage          `json:"stage"`
	Message  string         `json:"message"`
	Document *sbom.Document `json:"-"`
	Warnings []string       `json:"warnings,omitempty"`
	Bytes    int            `json:"bytes,omitempty"`
}

// ProgressCallback is called when a stage completes
type ProgressCallback func(event ProgressEvent)

// Options holds configuration for a single conversion
type Options struct {
	Render     rendering.Options
	OnProgress ProgressCallback
}

// DefaultOptions renders with rendering.DefaultOptions and reports no progress.
func DefaultOptions() Options {
	return Options{Render: rendering.DefaultOptions()}
}

// Convert turns raw SBOM JSON into PDF bytes using the default options.
func Convert(raw []byte) ([]byte, error) {
	return ConvertWithOptions(raw, DefaultOptions())
}

// ConvertWithOptions parses raw, lays it out and renders it. Errors are returned as
// *ConversionError wrapping the failing stage's error; nothing is retried.
func ConvertWithOptions(raw []byte, opts Options) ([]byte, error) {
	doc, err := sbom.Parse(raw)
	if err != nil {
		return nil, &ConversionError{Stage: StageParse, Err: err}
	}
	emitProgress(&opts, ProgressEvent{
		Stage:    StageParse,
		Message:  summarize(doc),
		Document: doc,
		Warnings: doc.Warnings,
	})

	sections := layout.Build(doc)
	emitProgress(&opts, ProgressEvent{
		Stage:   StageLayout,
		Message: pluralize(len(sections), "section"),
	})

	renderOpts := opts.Render
	if created, ok := documentTime(doc); ok && defaultTimestamp(renderOpts) {
		renderOpts.Timestamp = created
	}
	pdf, err := rendering.Render(sections, renderOpts)
	if err != nil {
		return nil, &ConversionError{Stage: StageRender, Err: err}
	}
	emitProgress(&opts, ProgressEvent{
		Stage:   StageRender,
		Message: pluralize(len(pdf), "byte"),
		Bytes:   len(pdf),
	})

	return pdf, nil
}

// documentTime returns creationInfo.created when it is an RFC 3339 timestamp.
func documentTime(doc *sbom.Document) (time.Time, bool) {
	if doc.CreationInfo.Created == nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, *doc.CreationInfo.Created)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// defaultTimestamp reports whether the caller left the PDF date unset, in which case the
// document's own creation time is used.
func defaultTimestamp(opts rendering.Options) bool {
	return opts.Timestamp.IsZero() || opts.Timestamp.Equal(rendering.DefaultTimestamp)
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *Options, event ProgressEvent) {
	if opts.OnProgress != nil {
		opts.OnProgress(event)
	}
}
