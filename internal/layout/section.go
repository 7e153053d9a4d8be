// Package layout turns a parsed SBOM into an ordered, renderer-agnostic list of sections.
package layout

// Section is one logical block of the report. The order of a []Section is the reading
// order of the output; renderers consume it front to back.
type Section interface {
	// Kind names the section type ("heading", "keyvalue", "table", "placeholder").
	Kind() string
}

// Cell is the pre-wrapped text of one table cell, one element per line. An empty cell
// has no lines.
type Cell []string

// Row is one table row.
type Row []Cell

// Height is the number of text lines of the tallest cell, at least one.
func (r Row) Height() int {
	h := 1
	for _, c := range r {
		h = max(h, len(c))
	}
	return h
}

// Column describes a table column. Width is measured in character cells.
type Column struct {
	Title Cell
	Width int
}

// Heading is a section title.
type Heading struct {
	Lines []string
}

// KeyValueBlock is a two-column list of labelled values without a header row.
type KeyValueBlock struct {
	KeyWidth   int
	ValueWidth int
	Rows       []Row
}

// Table is a headed table. Rows is never empty; an empty collection is laid out as a
// Placeholder instead.
type Table struct {
	Columns []Column
	Rows    []Row
}

// Placeholder stands in for a table that would have no rows.
type Placeholder struct {
	Text string
}

func (Heading) Kind() string       { return "heading" }
func (KeyValueBlock) Kind() string { return "keyvalue" }
func (Table) Kind() string         { return "table" }
func (Placeholder) Kind() string   { return "placeholder" }

// Width is the total width of the table in character cells.
func (t Table) Width() int {
	w := 0
	for _, c := range t.Columns {
		w += c.Width
	}
	return w
}

// HeaderRow returns the column titles as a row.
func (t Table) HeaderRow() Row {
	row := make(Row, len(t.Columns))
	for i, c := range t.Columns {
		row[i] = c.Title
	}
	return row
}
