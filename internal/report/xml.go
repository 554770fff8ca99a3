package report

import (
	"bytes"
	"encoding/xml"
	"io"

	"github.com/softaudit/softaudit/internal/model"
)

// xmlDocument is the marshalling shape for the string style: the whole
// inventory rendered in one step.
type xmlDocument struct {
	XMLName xml.Name               `xml:"softwareInventory"`
	Records []model.SoftwareRecord `xml:"software"`
}

// XMLWriter outputs records as a structured XML document. The string
// style marshals the whole document at once; the stream style encodes
// one element per record through a streaming encoder.
//
// Design decision: Both styles produce the same document shape. The
// distinction is how the document is built, which matters for callers
// that post-process the output incrementally.
type XMLWriter struct {
	baseWriter

	// style selects string (single marshal) or stream (per-record) mode.
	style model.Style
}

// NewXMLWriter creates an XMLWriter with the given style.
// The style must already be validated via ValidateStyle.
func NewXMLWriter(output io.Writer, style model.Style) *XMLWriter {
	return &XMLWriter{
		baseWriter: newBaseWriter(output),
		style:      style,
	}
}

// Write outputs the records as XML.
func (w *XMLWriter) Write(records []model.SoftwareRecord) (int, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	var err error
	if w.style == model.StyleXMLStream {
		err = w.encodeStream(&buf, records)
	} else {
		err = w.encodeString(&buf, records)
	}
	if err != nil {
		return 0, err
	}
	buf.WriteString("\n")

	return w.output.Write(buf.Bytes())
}

// encodeString marshals the whole document into one string blob.
func (w *XMLWriter) encodeString(buf *bytes.Buffer, records []model.SoftwareRecord) error {
	data, err := xml.MarshalIndent(xmlDocument{Records: records}, "", "  ")
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}

// encodeStream writes the document element by element: the root start
// tag, one software element per record, then the root end tag.
func (w *XMLWriter) encodeStream(buf *bytes.Buffer, records []model.SoftwareRecord) error {
	enc := xml.NewEncoder(buf)
	enc.Indent("", "  ")

	root := xml.StartElement{Name: xml.Name{Local: "softwareInventory"}}
	if err := enc.EncodeToken(root); err != nil {
		return err
	}
	for _, r := range records {
		elem := xml.StartElement{Name: xml.Name{Local: "software"}}
		if err := enc.EncodeElement(r, elem); err != nil {
			return err
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}
	return enc.Close()
}
