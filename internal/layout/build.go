package layout

import (
	"fmt"
	"strings"

	"github.com/package-url/packageurl-go"

	"github.com/jonathan/sbom-report/internal/sbom"
)

const (
	// DefaultTitle is used when the document has no name.
	DefaultTitle = "SBOM Document"
	// PlaceholderText replaces a table that would have no rows.
	PlaceholderText = "None"

	// HeadingWidth is the wrap width of headings, in character cells.
	HeadingWidth = 90

	keyWidth   = 24
	valueWidth = 126
)

// Column layouts, in character cells.
var (
	packageColumns = []columnSpec{
		{"ID", 14},
		{"Name", 20},
		{"Version", 10},
		{"Supplier", 16},
		{"License Concluded", 14},
		{"License Declared", 14},
		{"Download Location", 24},
		{"Checksums", 20},
		{"Details", 30},
	}
	fileColumns = []columnSpec{
		{"ID", 18},
		{"File Name", 40},
		{"License Concluded", 18},
		{"License Info", 22},
		{"Checksums", 30},
		{"Details", 34},
	}
	relationshipColumns = []columnSpec{
		{"Source", 60},
		{"Type", 24},
		{"Target", 60},
	}
)

type columnSpec struct {
	title string
	width int
}

// Build lays out a parsed document as: title and metadata, packages, files, relationships.
// Each collection becomes a Table with one row per entry in source order, or a Placeholder
// when it is empty. The document is only read.
func Build(doc *sbom.Document) []Section {
	if doc == nil {
		doc = &sbom.Document{}
	}
	b := builder{doc: doc}

	title := doc.Name
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}

	return []Section{
		heading(title),
		b.metadata(),
		heading("Packages"),
		b.packages(),
		heading("Files"),
		b.files(),
		heading("Relationships"),
		b.relationships(),
	}
}

type builder struct {
	doc *sbom.Document
}

func heading(text string) Heading {
	return Heading{Lines: Wrap(text, HeadingWidth)}
}

func (b builder) metadata() KeyValueBlock {
	d := b.doc
	info := d.CreationInfo
	pairs := []struct {
		key   string
		value string
	}{
		{"Name", d.Name},
		{"SPDX Version", deref(d.SPDXVersion)},
		{"Document ID", deref(d.ID)},
		{"Data License", deref(d.DataLicense)},
		{"Document Namespace", deref(d.Namespace)},
		{"Describes", deref(d.Describes)},
		{"Created", deref(info.Created)},
		{"Creators", strings.Join(info.Creators, ", ")},
		{"License List Version", deref(info.LicenseListVersion)},
		{"Creation Comment", deref(info.Comment)},
		{"Comment", deref(d.Comment)},
	}

	block := KeyValueBlock{KeyWidth: keyWidth, ValueWidth: valueWidth}
	for _, p := range pairs {
		block.Rows = append(block.Rows, Row{Wrap(p.key, keyWidth), Wrap(p.value, valueWidth)})
	}
	return block
}

func (b builder) packages() Section {
	if len(b.doc.Packages) == 0 {
		return Placeholder{Text: PlaceholderText}
	}
	t := newTable(packageColumns)
	for _, p := range b.doc.Packages {
		name := t.wrap(1, p.Name)
		if purl := canonicalPURL(p.PURL); purl != "" {
			name = append(name, t.wrap(1, purl)...)
		}
		t.Rows = append(t.Rows, Row{
			t.wrap(0, p.ID),
			name,
			t.wrap(2, deref(p.Version)),
			t.wrap(3, deref(p.Supplier)),
			t.wrap(4, deref(p.LicenseConcluded)),
			t.wrap(5, deref(p.LicenseDeclared)),
			t.wrap(6, deref(p.DownloadLocation)),
			checksumCell(p.Checksums, t.Columns[7].Width),
			detailCell(t.Columns[8].Width,
				detail{"Originator", p.Originator},
				detail{"Homepage", p.Homepage},
				detail{"Summary", p.Summary},
				detail{"Description", p.Description},
				detail{"Copyright", p.Copyright},
			),
		})
	}
	return t.Table
}

func (b builder) files() Section {
	if len(b.doc.Files) == 0 {
		return Placeholder{Text: PlaceholderText}
	}
	t := newTable(fileColumns)
	for _, f := range b.doc.Files {
		t.Rows = append(t.Rows, Row{
			t.wrap(0, f.ID),
			t.wrap(1, f.Name),
			t.wrap(2, deref(f.LicenseConcluded)),
			t.wrap(3, deref(f.LicenseInfo)),
			checksumCell(f.Checksums, t.Columns[4].Width),
			detailCell(t.Columns[5].Width,
				detail{"File Types", f.Types},
				detail{"Contributors", f.Contributors},
				detail{"Copyright", f.Copyright},
				detail{"Comment", f.Comment},
			),
		})
	}
	return t.Table
}

func (b builder) relationships() Section {
	if len(b.doc.Relationships) == 0 {
		return Placeholder{Text: PlaceholderText}
	}
	t := newTable(relationshipColumns)
	for _, r := range b.doc.Relationships {
		t.Rows = append(t.Rows, Row{
			t.wrap(0, b.describe(r.SourceID)),
			t.wrap(1, r.Type),
			t.wrap(2, b.describe(r.TargetID)),
		})
	}
	return t.Table
}

// describe labels an identifier with the name of what it points at. Identifiers that do
// not resolve are shown as they are.
func (b builder) describe(id string) string {
	el, ok := b.doc.Lookup(id)
	if !ok || strings.TrimSpace(el.Name) == "" {
		return id
	}
	return fmt.Sprintf("%s (%s)", el.Name, id)
}

type tableBuilder struct {
	Table
}

func newTable(specs []columnSpec) *tableBuilder {
	cols := make([]Column, len(specs))
	for i, s := range specs {
		cols[i] = Column{Title: Wrap(s.title, s.width), Width: s.width}
	}
	return &tableBuilder{Table: Table{Columns: cols}}
}

func (t *tableBuilder) wrap(col int, text string) Cell {
	return Wrap(text, t.Columns[col].Width)
}

// checksumCell lists one checksum per line, elided to the column width. Digests are the
// only values that are cut rather than wrapped.
func checksumCell(sums []sbom.Checksum, width int) Cell {
	cell := make(Cell, 0, len(sums))
	for _, c := range sums {
		line := c.Value
		if c.Algorithm != "" {
			line = c.Algorithm + ": " + c.Value
		}
		cell = append(cell, Elide(line, width))
	}
	return cell
}

type detail struct {
	label string
	value *string
}

// detailCell stacks the present details as "Label: value" paragraphs.
func detailCell(width int, details ...detail) Cell {
	var cell Cell
	for _, d := range details {
		v := strings.TrimSpace(deref(d.value))
		if v == "" {
			continue
		}
		cell = append(cell, Wrap(d.label+": "+v, width)...)
	}
	return cell
}

// canonicalPURL normalizes a package URL. Values that do not parse are kept verbatim.
func canonicalPURL(raw *string) string {
	s := strings.TrimSpace(deref(raw))
	if s == "" {
		return ""
	}
	purl, err := packageurl.FromString(s)
	if err != nil {
		return s
	}
	return purl.ToString()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
