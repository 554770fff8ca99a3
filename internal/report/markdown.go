package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/softaudit/softaudit/internal/model"
)

// MarkdownWriter outputs records in Markdown format, designed for
// documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent,
// type-safe markdown generation with table support rather than
// hand-rolling the pipe escaping rules.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the records as a Markdown document.
func (w *MarkdownWriter) Write(records []model.SoftwareRecord) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Software Audit Report")
	md.PlainText("")
	md.PlainText(strconv.Itoa(len(records)) + " installed application(s)")
	md.PlainText("")

	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = r.Fields()
	}
	md.Table(markdown.TableSet{
		Header: model.FieldHeaders(),
		Rows:   rows,
	})

	return len(md.String()), md.Build()
}
