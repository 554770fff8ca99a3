package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/softaudit/softaudit/internal/model"
)

// TextWriter outputs records as a human-readable text table.
// Column widths are sized to the widest value in each column so the
// table stays aligned regardless of content.
//
// Design decision: We measure and pad columns with plain fmt formatting
// rather than pulling in a table-rendering library. The output is a flat
// file, not a terminal UI, and the alignment rule is a dozen lines.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the records as an aligned text table.
func (w *TextWriter) Write(records []model.SoftwareRecord) (int, error) {
	headers := model.FieldHeaders()
	widths := columnWidths(headers, records)

	var sb strings.Builder

	writeRow := func(fields []string) {
		for i, field := range fields {
			if i > 0 {
				sb.WriteString("  ")
			}
			fmt.Fprintf(&sb, "%-*s", widths[i], field)
		}
		sb.WriteString("\n")
	}

	writeRow(headers)
	for i, width := range widths {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(strings.Repeat("-", width))
	}
	sb.WriteString("\n")

	for _, r := range records {
		writeRow(r.Fields())
	}

	return w.output.Write([]byte(sb.String()))
}

// columnWidths returns the width of each column: the longest of the
// header and every record value in that column.
func columnWidths(headers []string, records []model.SoftwareRecord) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, r := range records {
		for i, field := range r.Fields() {
			if len(field) > widths[i] {
				widths[i] = len(field)
			}
		}
	}
	return widths
}
