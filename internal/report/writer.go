package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/softaudit/softaudit/internal/model"
)

// Configuration errors raised before any I/O occurs.
var (
	// ErrStyleRequired is returned when an HTML or XML report is requested
	// without a formatting style.
	ErrStyleRequired = errors.New("formatting style is required")

	// ErrInvalidStyle is returned when the given style does not belong to
	// the requested format.
	ErrInvalidStyle = errors.New("formatting style is not valid for format")
)

// Writer outputs a record sequence in one format.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or buffers
// with the same API, and lets MultiWriter fan a report out to several
// destinations at once.
type Writer interface {
	// Write outputs the records to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(records []model.SoftwareRecord) (int, error)
}

// MultiWriter writes the same records to multiple Writers.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different from
// io.Writer - we write record sequences, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the records to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(records []model.SoftwareRecord) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(records)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// ValidateStyle checks the formatting style against the format.
// HTML requires table or list; XML requires string or stream. For every
// other format the style is not applicable and any value passes.
//
// This is the explicit pre-condition of the reporter: it runs before any
// format branch executes and before any I/O.
func ValidateStyle(format model.Format, style model.Style) error {
	if !format.RequiresStyle() {
		return nil
	}
	if style == model.StyleNone {
		return fmt.Errorf("%w: format %s", ErrStyleRequired, format)
	}
	if !style.ValidFor(format) {
		return fmt.Errorf("%w: style %s, format %s", ErrInvalidStyle, style, format)
	}
	return nil
}

// New creates the Writer for the given format, style, and destination.
// The style is validated first; a configuration error means no writer is
// constructed and nothing is written.
func New(format model.Format, style model.Style, output io.Writer) (Writer, error) {
	if err := ValidateStyle(format, style); err != nil {
		return nil, err
	}

	switch format {
	case model.FormatTXT:
		return NewTextWriter(output), nil
	case model.FormatCSV:
		return NewCSVWriter(output), nil
	case model.FormatHTML:
		return NewHTMLWriter(output, style), nil
	case model.FormatXML:
		return NewXMLWriter(output, style), nil
	case model.FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case model.FormatMarkdown:
		return NewMarkdownWriter(output), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
