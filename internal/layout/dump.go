package layout

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

type yamlSection struct {
	Kind    string       `yaml:"kind"`
	Lines   []string     `yaml:"lines,omitempty"`
	Text    string       `yaml:"text,omitempty"`
	Columns []yamlColumn `yaml:"columns,omitempty"`
	Rows    [][]string   `yaml:"rows,omitempty"`
}

type yamlColumn struct {
	Title string `yaml:"title"`
	Width int    `yaml:"width"`
}

// DumpYAML writes the sections as a YAML list, one entry per section. Multi-line cells
// are joined with newlines.
func DumpYAML(w io.Writer, sections []Section) error {
	out := make([]yamlSection, 0, len(sections))
	for _, s := range sections {
		ys := yamlSection{Kind: s.Kind()}
		switch s := s.(type) {
		case Heading:
			ys.Lines = s.Lines
		case Placeholder:
			ys.Text = s.Text
		case KeyValueBlock:
			ys.Columns = []yamlColumn{{Title: "key", Width: s.KeyWidth}, {Title: "value", Width: s.ValueWidth}}
			ys.Rows = yamlRows(s.Rows)
		case Table:
			for _, c := range s.Columns {
				ys.Columns = append(ys.Columns, yamlColumn{Title: strings.Join(c.Title, " "), Width: c.Width})
			}
			ys.Rows = yamlRows(s.Rows)
		default:
			return fmt.Errorf("unsupported section type %T", s)
		}
		out = append(out, ys)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}
	return enc.Close()
}

func yamlRows(rows []Row) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			out[i][j] = strings.Join(cell, "\n")
		}
	}
	return out
}
