package rendering

import "time"

// Options control the page geometry and output of the PDF renderer.
type Options struct {
	// Portrait selects portrait Letter pages; the default is landscape.
	Portrait bool
	// FontSize is the largest body font size in points. The renderer shrinks it until the
	// widest table fits between the margins.
	FontSize float64
	// HeadingSize is the heading font size in points.
	HeadingSize float64
	// HeadingFont is a core PDF font family used for headings and the footer.
	HeadingFont string
	// Margin is the page margin on every side, in points.
	Margin float64
	// Compress enables stream compression.
	Compress bool
	// Timestamp is written as the creation and modification date.
	Timestamp time.Time
	// Title is the document title in the PDF metadata. When empty the first heading is used.
	Title string
}

// DefaultTimestamp is the document date used when Options.Timestamp is zero, so that the
// same input always renders to the same bytes.
var DefaultTimestamp = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// DefaultOptions returns landscape Letter pages with half-inch margins.
func DefaultOptions() Options {
	return Options{
		FontSize:    8,
		HeadingSize: 14,
		HeadingFont: "Helvetica",
		Margin:      36,
		Compress:    true,
		Timestamp:   DefaultTimestamp,
	}
}

func (o Options) validate() error {
	switch {
	case o.FontSize <= 0:
		return &OptionsError{Field: "FontSize", Message: "must be positive"}
	case o.HeadingSize <= 0:
		return &OptionsError{Field: "HeadingSize", Message: "must be positive"}
	case o.HeadingFont == "":
		return &OptionsError{Field: "HeadingFont", Message: "must not be empty"}
	case o.Margin < 0:
		return &OptionsError{Field: "Margin", Message: "must not be negative"}
	}
	return nil
}
