package report

import (
	"encoding/json"
	"io"

	"github.com/softaudit/softaudit/internal/model"
)

// JSONWriter outputs records as a JSON array of record objects.
// The array shape is stable: zero records yield "[]" and a single record
// is never unwrapped into a bare object, so consumers can always parse
// an array.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because it's sufficient for a flat record schema and
// behaves consistently across Go versions.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the records as a JSON array.
func (w *JSONWriter) Write(records []model.SoftwareRecord) (int, error) {
	// A nil slice would marshal to "null"; the contract is an array.
	if records == nil {
		records = []model.SoftwareRecord{}
	}

	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(records, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(records)
	}
	if err != nil {
		return 0, err
	}

	// Trailing newline for better terminal output.
	data = append(data, '\n')

	return w.output.Write(data)
}
