package rendering

import (
	"bytes"
	"fmt"
	"io"
	"slices"

	"github.com/go-pdf/fpdf"

	"github.com/jonathan/sbom-report/internal/layout"
)

const (
	// bodyFont is monospaced so that a column of n character cells is exactly
	// n*charWidth*size points wide.
	bodyFont  = "Courier"
	charWidth = 0.6

	lineSpacing = 1.2
	cellPad     = 2.0
	headingGap  = 4.0
	blockGap    = 12.0

	footerSize   = 8.0
	footerHeight = 14.0
)

// Render draws the sections, in order, into a PDF and returns its bytes.
func Render(sections []layout.Section, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := RenderTo(&buf, sections, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderTo draws the sections into a PDF written to w.
func RenderTo(w io.Writer, sections []layout.Section, opts Options) error {
	r, err := newRenderer(sections, opts)
	if err != nil {
		return err
	}
	if err := r.draw(sections); err != nil {
		return err
	}
	if err := r.pdf.Output(w); err != nil {
		return &RenderError{Message: "failed to write PDF", Cause: err}
	}
	return nil
}

type renderer struct {
	pdf  *fpdf.Fpdf
	opts Options

	size  float64 // body font size
	lineH float64

	left, width float64
	top, bottom float64
	y           float64

	headings int
}

func newRenderer(sections []layout.Section, opts Options) (*renderer, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	orientation := "L"
	if opts.Portrait {
		orientation = "P"
	}
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		SizeStr:        "Letter",
	})

	pageW, pageH := pdf.GetPageSize()
	r := &renderer{
		pdf:    pdf,
		opts:   opts,
		left:   opts.Margin,
		width:  pageW - 2*opts.Margin,
		top:    opts.Margin,
		bottom: pageH - opts.Margin - footerHeight,
	}
	if r.width <= 0 || r.bottom-r.top <= 0 {
		return nil, &OptionsError{Field: "Margin", Message: "leaves no printable area"}
	}

	r.size = fitFontSize(sections, r.width, opts.FontSize)
	r.lineH = r.size * lineSpacing

	ts := opts.Timestamp
	if ts.IsZero() {
		ts = DefaultTimestamp
	}
	title := opts.Title
	if title == "" {
		title = firstHeading(sections)
	}

	pdf.SetMargins(opts.Margin, opts.Margin, opts.Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(0)
	pdf.SetCompression(opts.Compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(ts)
	pdf.SetModificationDate(ts)
	pdf.SetTitle(title, true)
	pdf.SetCreator("sbom-report", false)
	pdf.AliasNbPages("")
	pdf.SetDrawColor(160, 160, 160)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetLineWidth(0.5)
	pdf.SetFooterFunc(func() {
		pdf.SetFont(opts.HeadingFont, "", footerSize)
		pdf.SetXY(r.left, pageH-opts.Margin-footerSize)
		pdf.CellFormat(r.width, footerSize, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "CM", false, 0, "")
	})

	return r, nil
}

// fitFontSize returns the largest size, at most limit, at which every table and key-value
// block fits the printable width.
func fitFontSize(sections []layout.Section, printable, limit float64) float64 {
	size := limit
	for _, s := range sections {
		var chars, cols int
		switch s := s.(type) {
		case layout.Table:
			chars, cols = s.Width(), len(s.Columns)
		case layout.KeyValueBlock:
			chars, cols = s.KeyWidth+s.ValueWidth, 2
		default:
			continue
		}
		if chars == 0 {
			continue
		}
		fit := (printable - float64(cols)*2*cellPad) / (float64(chars) * charWidth)
		size = min(size, fit)
	}
	return size
}

func firstHeading(sections []layout.Section) string {
	for _, s := range sections {
		if h, ok := s.(layout.Heading); ok && len(h.Lines) > 0 {
			return h.Lines[0]
		}
	}
	return ""
}

func (r *renderer) draw(sections []layout.Section) error {
	r.newPage()
	for i, s := range sections {
		var next layout.Section
		if i+1 < len(sections) {
			next = sections[i+1]
		}
		switch s := s.(type) {
		case layout.Heading:
			r.heading(s, next)
		case layout.KeyValueBlock:
			r.keyValues(s)
		case layout.Table:
			r.table(s)
		case layout.Placeholder:
			r.placeholder(s)
		default:
			return &RenderError{Message: fmt.Sprintf("unsupported section type %T", s)}
		}
		if r.pdf.Err() {
			return &RenderError{Message: "failed to draw document", Cause: r.pdf.Error()}
		}
	}
	return nil
}

func (r *renderer) newPage() {
	r.pdf.AddPage()
	r.y = r.top
}

// heading starts a new page unless the heading and the first line of what follows it fit
// on the current one. A heading taller than a page is cut to a page and ends in an ellipsis.
func (r *renderer) heading(h layout.Heading, next layout.Section) {
	lines := h.Lines
	if len(lines) == 0 {
		return
	}
	size := r.headingSize(lines)
	if r.pdf.Err() {
		return
	}
	if fit := max(int((r.bottom-r.top-headingGap)/(size*lineSpacing)), 1); len(lines) > fit {
		lines = append(slices.Clone(lines[:fit-1]), lines[fit-1]+layout.Ellipsis)
		size = r.headingSize(lines)
	}
	lineH := size * lineSpacing

	need := float64(len(lines))*lineH + headingGap + r.leadHeight(next)
	if r.y+need > r.bottom && r.y > r.top {
		r.newPage()
	}

	level := 1
	if r.headings == 0 {
		level = 0
	}
	r.pdf.Bookmark(EncodeText(lines[0]), level, r.y)
	r.headings++

	r.pdf.SetFont(r.opts.HeadingFont, "B", size)
	for _, line := range lines {
		r.pdf.SetXY(r.left, r.y)
		r.pdf.CellFormat(r.width, lineH, EncodeText(line), "", 0, "LM", false, 0, "")
		r.y += lineH
	}
	r.y += headingGap
}

// headingSize shrinks the heading font until its longest line fits the page width.
func (r *renderer) headingSize(lines []string) float64 {
	size := r.opts.HeadingSize
	r.pdf.SetFont(r.opts.HeadingFont, "B", size)
	widest := 0.0
	for _, line := range lines {
		widest = max(widest, r.pdf.GetStringWidth(EncodeText(line)))
	}
	if widest > r.width {
		size *= r.width / widest
	}
	return size
}

// leadHeight is the space the start of a section needs: its header row, if any, plus one
// line of content.
func (r *renderer) leadHeight(s layout.Section) float64 {
	minRow := r.lineH + 2*cellPad
	switch s := s.(type) {
	case layout.Table:
		return r.rowHeight(s.HeaderRow()) + minRow
	case layout.KeyValueBlock:
		return minRow
	case layout.Placeholder:
		return r.lineH
	}
	return 0
}

func (r *renderer) placeholder(p layout.Placeholder) {
	if r.y+r.lineH > r.bottom {
		r.newPage()
	}
	r.pdf.SetFont(bodyFont, "I", r.size)
	r.pdf.SetXY(r.left, r.y)
	r.pdf.CellFormat(r.width, r.lineH, EncodeText(p.Text), "", 0, "LM", false, 0, "")
	r.y += r.lineH + blockGap
}

func (r *renderer) keyValues(kv layout.KeyValueBlock) {
	widths := []float64{r.columnWidth(kv.KeyWidth), r.columnWidth(kv.ValueWidth)}
	r.rows(widths, nil, kv.Rows, true)
	r.y += blockGap
}

func (r *renderer) table(t layout.Table) {
	widths := make([]float64, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = r.columnWidth(c.Width)
	}
	r.rows(widths, t.HeaderRow(), t.Rows, false)
	r.y += blockGap
}

// rows draws a header followed by the body rows. A row that does not fit the rest of the
// page moves to the next page, where the header is repeated. Only a row taller than a
// whole page is split, at line boundaries.
func (r *renderer) rows(widths []float64, header layout.Row, rows []layout.Row, keyColumn bool) {
	headerH := 0.0
	if header != nil {
		headerH = r.rowHeight(header)
		if r.y+headerH+r.lineH+2*cellPad > r.bottom {
			r.newPage()
		}
		r.row(widths, header, true, false)
	}

	capacity := max(int((r.bottom-r.top-headerH-2*cellPad)/r.lineH), 1)
	for _, row := range rows {
		for _, part := range splitRow(row, capacity) {
			if r.y+r.rowHeight(part) > r.bottom {
				r.newPage()
				if header != nil {
					r.row(widths, header, true, false)
				}
			}
			r.row(widths, part, false, keyColumn)
		}
	}
}

func (r *renderer) row(widths []float64, row layout.Row, header, keyColumn bool) {
	h := r.rowHeight(row)
	x := r.left
	for i, w := range widths {
		style := "D"
		if header {
			style = "FD"
		}
		r.pdf.Rect(x, r.y, w, h, style)

		fontStyle := ""
		if header || (keyColumn && i == 0) {
			fontStyle = "B"
		}
		r.pdf.SetFont(bodyFont, fontStyle, r.size)

		if i < len(row) {
			for j, line := range row[i] {
				r.pdf.SetXY(x+cellPad, r.y+cellPad+float64(j)*r.lineH)
				r.pdf.CellFormat(w-2*cellPad, r.lineH, EncodeText(line), "", 0, "LM", false, 0, "")
			}
		}
		x += w
	}
	r.y += h
}

func (r *renderer) columnWidth(chars int) float64 {
	return float64(chars)*charWidth*r.size + 2*cellPad
}

func (r *renderer) rowHeight(row layout.Row) float64 {
	return float64(row.Height())*r.lineH + 2*cellPad
}

// splitRow cuts a row into parts of at most capacity lines each.
func splitRow(row layout.Row, capacity int) []layout.Row {
	height := row.Height()
	if height <= capacity {
		return []layout.Row{row}
	}
	var parts []layout.Row
	for start := 0; start < height; start += capacity {
		end := start + capacity
		part := make(layout.Row, len(row))
		for i, cell := range row {
			if start < len(cell) {
				part[i] = cell[start:min(end, len(cell))]
			}
		}
		parts = append(parts, part)
	}
	return parts
}
