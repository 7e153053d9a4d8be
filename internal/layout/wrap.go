package layout

import (
	"slices"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"
)

// Ellipsis marks elided text.
const Ellipsis = "…"

// breakpoints are the characters, besides whitespace, after which a long token such as a
// URL or a path may be broken.
var breakpoints = []rune{'/', '-', '_', '.', ':', '?', '&', '=', ','}

var whitespace = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\t", " ")

// Wrap splits text into lines of at most width character cells. Lines break at whitespace
// and after breakpoints, and every line is filled with as many whole segments as fit. Only
// a segment wider than the column is cut at the column edge.
func Wrap(text string, width int) Cell {
	text = strings.TrimSpace(whitespace.Replace(text))
	if text == "" {
		return nil
	}
	width = max(width, 1)

	var cell Cell
	for _, paragraph := range strings.Split(text, "\n") {
		cell = append(cell, fill(segments(paragraph), width)...)
	}
	for len(cell) > 0 && cell[len(cell)-1] == "" {
		cell = cell[:len(cell)-1]
	}
	return cell
}

// segment is an unbreakable run of text. spaced is set when whitespace precedes it.
type segment struct {
	text   string
	spaced bool
}

// segments cuts a line at whitespace and after each breakpoint.
func segments(line string) []segment {
	var out []segment
	var cur strings.Builder
	spaced := false
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, segment{text: cur.String(), spaced: spaced})
			cur.Reset()
			spaced = false
		}
	}
	for _, r := range line {
		if r == ' ' {
			flush()
			spaced = len(out) > 0
			continue
		}
		cur.WriteRune(r)
		if slices.Contains(breakpoints, r) {
			flush()
		}
	}
	flush()
	return out
}

// fill packs segments greedily into lines of at most width cells.
func fill(segs []segment, width int) []string {
	if len(segs) == 0 {
		return []string{""}
	}
	var lines []string
	line := ""
	for _, seg := range segs {
		candidate := seg.text
		if line != "" {
			candidate = line + seg.text
			if seg.spaced {
				candidate = line + " " + seg.text
			}
		}
		if ansi.PrintableRuneWidth(candidate) <= width {
			line = candidate
			continue
		}
		if line != "" {
			lines = append(lines, line)
		}
		line = seg.text
		if ansi.PrintableRuneWidth(seg.text) > width {
			parts := strings.Split(wrap.String(seg.text, width), "\n")
			lines = append(lines, parts[:len(parts)-1]...)
			line = parts[len(parts)-1]
		}
	}
	return append(lines, line)
}

// Elide cuts text to at most width character cells, ending in an ellipsis when cut.
func Elide(text string, width int) string {
	text = strings.TrimSpace(text)
	if width < 1 {
		return ""
	}
	return truncate.StringWithTail(text, uint(width), Ellipsis)
}
