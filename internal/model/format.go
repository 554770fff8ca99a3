package model

import (
	"fmt"
	"strings"
)

// Format identifies a report output format.
//
// Design decision: We use a string type rather than iota constants so the
// value can flow directly between CLI flags, config files, and file
// extensions without a translation table.
type Format string

// Supported report formats.
const (
	FormatTXT      Format = "txt"
	FormatCSV      Format = "csv"
	FormatHTML     Format = "html"
	FormatXML      Format = "xml"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formats returns all supported formats in display order.
func Formats() []Format {
	return []Format{FormatTXT, FormatCSV, FormatHTML, FormatXML, FormatJSON, FormatMarkdown}
}

// ParseFormat converts a user-supplied string into a Format.
// Matching is case-insensitive. Unknown values return an error that
// names the valid set so the user can correct the flag.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatTXT, FormatCSV, FormatHTML, FormatXML, FormatJSON, FormatMarkdown:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown format %q (valid: txt, csv, html, xml, json, markdown)", s)
}

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	if f == FormatMarkdown {
		return "md"
	}
	return string(f)
}

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// RequiresStyle reports whether the format needs a sub-format Style.
// Only HTML and XML carry a style; for every other format the style is
// not applicable and is ignored.
func (f Format) RequiresStyle() bool {
	return f == FormatHTML || f == FormatXML
}

// Style selects the sub-format for HTML and XML reports.
type Style string

// Supported styles. StyleNone is the zero value used by formats that do
// not take a style.
const (
	StyleNone Style = ""

	// HTML styles.
	StyleHTMLTable Style = "table"
	StyleHTMLList  Style = "list"

	// XML styles.
	StyleXMLString Style = "string"
	StyleXMLStream Style = "stream"
)

// ParseHTMLStyle converts a user-supplied string into an HTML style.
func ParseHTMLStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case StyleHTMLTable:
		return StyleHTMLTable, nil
	case StyleHTMLList:
		return StyleHTMLList, nil
	}
	return StyleNone, fmt.Errorf("unknown HTML style %q (valid: table, list)", s)
}

// ParseXMLStyle converts a user-supplied string into an XML style.
func ParseXMLStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case StyleXMLString:
		return StyleXMLString, nil
	case StyleXMLStream:
		return StyleXMLStream, nil
	}
	return StyleNone, fmt.Errorf("unknown XML mode %q (valid: string, stream)", s)
}

// ValidFor reports whether the style is a valid choice for the format.
func (s Style) ValidFor(f Format) bool {
	switch f {
	case FormatHTML:
		return s == StyleHTMLTable || s == StyleHTMLList
	case FormatXML:
		return s == StyleXMLString || s == StyleXMLStream
	default:
		// Style is not applicable; any value is tolerated and ignored.
		return true
	}
}

// String returns the style name.
func (s Style) String() string {
	return string(s)
}
