// Package report serializes software records into the supported output
// formats.
//
// Each format has its own writer type (TextWriter, CSVWriter, HTMLWriter,
// XMLWriter, JSONWriter, MarkdownWriter) implementing the Writer
// interface over an io.Writer, so reports can go to files, stdout, or
// buffers with the same API. WriteFile wraps the writers with the
// timestamped-filename and directory-handling rules for file output.
//
// Design decision: Format selection is a closed set handled by the New
// factory rather than dynamic registration. The set of formats is small
// and stable, and a switch keeps the validation rules (HTML and XML
// require a style, nothing else does) in one visible place.
package report
