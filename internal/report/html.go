package report

import (
	"bytes"
	"html/template"
	"io"

	"github.com/softaudit/softaudit/internal/model"
)

// htmlTableTemplate renders the records as a full HTML document wrapping
// a table.
const htmlTableTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Software Audit Report</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 0.4em 0.8em; text-align: left; }
th { background-color: #f0f0f0; }
</style>
</head>
<body>
<h1>Software Audit Report</h1>
<p>{{len .Records}} installed application(s)</p>
<table>
<thead>
<tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr>
</thead>
<tbody>
{{range .Records}}<tr><td>{{.Name}}</td><td>{{.Version}}</td><td>{{.InstallDate}}</td><td>{{.Publisher}}</td><td>{{.InstallLocation}}</td></tr>
{{end}}</tbody>
</table>
</body>
</html>
`

// htmlListTemplate renders the records as a full HTML document wrapping
// a list, one item per application.
const htmlListTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Software Audit Report</title>
<style>
body { font-family: sans-serif; margin: 2em; }
li { margin-bottom: 1em; }
dt { font-weight: bold; }
</style>
</head>
<body>
<h1>Software Audit Report</h1>
<p>{{len .Records}} installed application(s)</p>
<ul>
{{range .Records}}<li>
<strong>{{.Name}}</strong>
<dl>
<dt>Version</dt><dd>{{.Version}}</dd>
<dt>Install Date</dt><dd>{{.InstallDate}}</dd>
<dt>Publisher</dt><dd>{{.Publisher}}</dd>
<dt>Install Location</dt><dd>{{.InstallLocation}}</dd>
</dl>
</li>
{{end}}</ul>
</body>
</html>
`

var (
	htmlTableTmpl = template.Must(template.New("table").Parse(htmlTableTemplate))
	htmlListTmpl  = template.Must(template.New("list").Parse(htmlListTemplate))
)

// HTMLWriter outputs records as a complete HTML document. The style
// selects between a table view and a list view.
//
// Design decision: html/template rather than string concatenation so
// record values are escaped; application names and publisher strings are
// arbitrary registry content.
type HTMLWriter struct {
	baseWriter

	// style selects the document body layout (table or list).
	style model.Style
}

// NewHTMLWriter creates an HTMLWriter with the given style.
// The style must already be validated via ValidateStyle.
func NewHTMLWriter(output io.Writer, style model.Style) *HTMLWriter {
	return &HTMLWriter{
		baseWriter: newBaseWriter(output),
		style:      style,
	}
}

// Write outputs the records as an HTML document.
func (w *HTMLWriter) Write(records []model.SoftwareRecord) (int, error) {
	tmpl := htmlTableTmpl
	if w.style == model.StyleHTMLList {
		tmpl = htmlListTmpl
	}

	data := struct {
		Headers []string
		Records []model.SoftwareRecord
	}{
		Headers: model.FieldHeaders(),
		Records: records,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return 0, err
	}

	return w.output.Write(buf.Bytes())
}
