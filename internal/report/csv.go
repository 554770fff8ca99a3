package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/softaudit/softaudit/internal/model"
)

// asciiTransformer reduces text to plain ASCII: decompose, drop combining
// marks (so "é" becomes "e"), and replace whatever is still non-ASCII
// with '?'.
var asciiTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	runes.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return '?'
		}
		return r
	}),
	norm.NFC,
)

// CSVWriter outputs records as comma-separated values: one header row
// followed by one row per record, ASCII-encoded, with no type-metadata
// line.
//
// Design decision: encoding/csv handles quoting and escaping; the ASCII
// guarantee is layered on with an x/text transform so publisher and
// product names with accented characters degrade predictably instead of
// producing mixed-encoding files.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the records in CSV form.
func (w *CSVWriter) Write(records []model.SoftwareRecord) (int, error) {
	var buf bytes.Buffer

	cw := csv.NewWriter(transform.NewWriter(&buf, asciiTransformer))
	if err := cw.Write(model.FieldHeaders()); err != nil {
		return 0, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(r.Fields()); err != nil {
			return 0, fmt.Errorf("failed to write CSV row for %s: %w", r.Name, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("failed to flush CSV output: %w", err)
	}

	return w.output.Write(buf.Bytes())
}
