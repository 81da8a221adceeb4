package report

// Annotation rendering: text, JSON and CSV

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/tonylturner/ddcdec/internal/ddc"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Row selections.
const (
	RowsAll   = "all"
	RowsDDC   = ddc.RowDDC
	RowsDebug = ddc.RowDebug
)

// Options controls Render.
type Options struct {
	Format  string
	Rows    string
	Color   bool
	Summary bool
}

// Input is the decoded output of one trace.
type Input struct {
	Input       string           `json:"input"`
	Annotations []ddc.Annotation `json:"annotations"`
	Summary     *Summary         `json:"summary,omitempty"`
}

// FilterRows keeps the annotations shown in the selected row.
func FilterRows(annotations []ddc.Annotation, rows string) []ddc.Annotation {
	if rows == "" || rows == RowsAll {
		return annotations
	}
	out := make([]ddc.Annotation, 0, len(annotations))
	for _, a := range annotations {
		if a.Category.Row() == rows {
			out = append(out, a)
		}
	}
	return out
}

// Render writes every input in the selected format. JSON is always an
// array of inputs; CSV gains an input column and text gains a header line
// per input when there is more than one.
func Render(w io.Writer, inputs []Input, opts Options) error {
	multi := len(inputs) > 1
	switch opts.Format {
	case "", FormatText:
		for _, in := range inputs {
			if multi {
				fmt.Fprintf(w, "== %s ==\n", in.Input)
			}
			if err := WriteText(w, FilterRows(in.Annotations, opts.Rows), opts.Color); err != nil {
				return err
			}
			if opts.Summary && in.Summary != nil {
				WriteSummary(w, *in.Summary)
			}
		}
		return nil

	case FormatJSON:
		out := make([]Input, 0, len(inputs))
		for _, in := range inputs {
			in.Annotations = FilterRows(in.Annotations, opts.Rows)
			if in.Annotations == nil {
				in.Annotations = []ddc.Annotation{}
			}
			if !opts.Summary {
				in.Summary = nil
			}
			out = append(out, in)
		}
		return WriteJSON(w, out)

	case FormatCSV:
		cw := NewCSVWriter(w, multi)
		for _, in := range inputs {
			if err := cw.Write(in.Input, FilterRows(in.Annotations, opts.Rows)); err != nil {
				return err
			}
		}
		return cw.Flush()

	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

// categoryColors maps annotation categories to terminal colors.
var categoryColors = map[ddc.Category]lipgloss.Color{
	ddc.CategoryAddress:  lipgloss.Color("#7aa2f7"),
	ddc.CategoryRegister: lipgloss.Color("#e0af68"),
	ddc.CategoryFields:   lipgloss.Color("#9ece6a"),
	ddc.CategoryDebug:    lipgloss.Color("#565f89"),
}

// CategoryStyle returns the style used for a category label.
func CategoryStyle(r *lipgloss.Renderer, cat ddc.Category) lipgloss.Style {
	style := r.NewStyle().Width(8)
	if color, ok := categoryColors[cat]; ok {
		style = style.Foreground(color)
	}
	if cat != ddc.CategoryDebug {
		style = style.Bold(true)
	}
	return style
}

// FormatLine formats one annotation as a text line without styling.
func FormatLine(a ddc.Annotation) string {
	return fmt.Sprintf("%10d-%-10d %-8s %s", a.Start, a.End, a.Category, a.Text)
}

// WriteText writes one line per annotation.
func WriteText(w io.Writer, annotations []ddc.Annotation, color bool) error {
	if !color {
		for _, a := range annotations {
			if _, err := fmt.Fprintln(w, FormatLine(a)); err != nil {
				return err
			}
		}
		return nil
	}

	r := lipgloss.NewRenderer(w)
	dim := r.NewStyle().Foreground(lipgloss.Color("#565f89"))
	for _, a := range annotations {
		span := dim.Render(fmt.Sprintf("%10d-%-10d", a.Start, a.End))
		label := CategoryStyle(r, a.Category).Render(a.Category.String())
		if _, err := fmt.Fprintf(w, "%s %s %s\n", span, label, a.Text); err != nil {
			return err
		}
	}
	return nil
}

// CSVWriter writes annotation records under a single header row,
// optionally tagging each record with its input.
type CSVWriter struct {
	w         *csv.Writer
	withInput bool
	header    bool
}

// NewCSVWriter creates a CSV writer; withInput adds a leading input column.
func NewCSVWriter(w io.Writer, withInput bool) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w), withInput: withInput}
}

// Write appends the annotations of one input.
func (c *CSVWriter) Write(input string, annotations []ddc.Annotation) error {
	if !c.header {
		header := []string{"start", "end", "row", "category", "text"}
		if c.withInput {
			header = append([]string{"input"}, header...)
		}
		if err := c.w.Write(header); err != nil {
			return fmt.Errorf("write csv header: %w", err)
		}
		c.header = true
	}
	for _, a := range annotations {
		record := []string{
			strconv.FormatUint(a.Start, 10),
			strconv.FormatUint(a.End, 10),
			a.Category.Row(),
			a.Category.String(),
			a.Text,
		}
		if c.withInput {
			record = append([]string{input}, record...)
		}
		if err := c.w.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	return nil
}

// Flush writes buffered records.
func (c *CSVWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}
