package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"errors"
	"strings"
	"testing"

	"github.com/softaudit/softaudit/internal/model"
)

// testRecords returns a small record set for writer tests.
func testRecords() []model.SoftwareRecord {
	return []model.SoftwareRecord{
		model.NewSoftwareRecord("Example Editor", "4.2.1", "20230115", "Example Corp", "/opt/editor"),
		model.NewSoftwareRecord("Bare Tool", "", "", "", ""),
		model.NewSoftwareRecord("Café Client", "0.9", "notadate", "Caffè S.p.A.", ""),
	}
}

// TestValidateStyle tests the reporter's pre-condition check.
func TestValidateStyle(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		format   model.Format
		style    model.Style
		expected error
	}{
		{"html without style", model.FormatHTML, model.StyleNone, ErrStyleRequired},
		{"xml without style", model.FormatXML, model.StyleNone, ErrStyleRequired},
		{"html with xml style", model.FormatHTML, model.StyleXMLStream, ErrInvalidStyle},
		{"xml with html style", model.FormatXML, model.StyleHTMLTable, ErrInvalidStyle},
		{"html table", model.FormatHTML, model.StyleHTMLTable, nil},
		{"xml stream", model.FormatXML, model.StyleXMLStream, nil},
		{"txt ignores style", model.FormatTXT, model.StyleNone, nil},
		{"json ignores stray style", model.FormatJSON, model.StyleHTMLTable, nil},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateStyle(tc.format, tc.style)
			if tc.expected == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.expected) {
				t.Errorf("got %v, expected %v", err, tc.expected)
			}
		})
	}
}

// TestTextWriter tests the aligned text table output.
func TestTextWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewTextWriter(&buf).Write(testRecords()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// Header, separator, one line per record.
	if len(lines) != 5 {
		t.Fatalf("got %d lines, expected 5:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "Name") {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.Contains(lines[2], "Example Editor") || !strings.Contains(lines[2], "2023-01-15") {
		t.Errorf("record line = %q", lines[2])
	}

	// Columns are auto-sized: every column starts at the same offset on
	// every line, so the Version header and each version value line up.
	col := strings.Index(lines[0], "Version")
	if col < 0 {
		t.Fatalf("no Version column in header %q", lines[0])
	}
	if got := strings.Index(lines[2], "4.2.1"); got != col {
		t.Errorf("version value at offset %d, expected %d (misaligned table)", got, col)
	}
}

// TestCSVWriter tests CSV structure and ASCII encoding.
func TestCSVWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewCSVWriter(&buf).Write(testRecords()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not parseable CSV: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, expected header + 3 records", len(rows))
	}
	if rows[0][0] != "Name" {
		t.Errorf("header row = %v", rows[0])
	}
	if rows[2][1] != model.NotAvailable {
		t.Errorf("absent version = %q, expected %q", rows[2][1], model.NotAvailable)
	}

	// ASCII-encoded: accented characters are transliterated.
	if rows[3][0] != "Cafe Client" {
		t.Errorf("name = %q, expected ASCII transliteration", rows[3][0])
	}
	for _, b := range buf.Bytes() {
		if b > 127 {
			t.Fatalf("output contains non-ASCII byte %#x", b)
		}
	}
}

// TestHTMLWriter tests both document styles.
func TestHTMLWriter(t *testing.T) {
	t.Parallel()

	t.Run("table style", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewHTMLWriter(&buf, model.StyleHTMLTable).Write(testRecords()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "<!DOCTYPE html>") || !strings.Contains(out, "</html>") {
			t.Error("expected a full HTML document")
		}
		if !strings.Contains(out, "<table>") {
			t.Error("expected a table view")
		}
		if !strings.Contains(out, "<td>Example Editor</td>") {
			t.Error("expected record cells")
		}
	})

	t.Run("list style", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewHTMLWriter(&buf, model.StyleHTMLList).Write(testRecords()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "<ul>") {
			t.Error("expected a list view")
		}
		if strings.Contains(out, "<table>") {
			t.Error("list style must not render a table")
		}
		if !strings.Contains(out, "Example Editor") {
			t.Error("expected record content")
		}
	})
}

// TestXMLWriter tests that both modes produce an equivalent document.
func TestXMLWriter(t *testing.T) {
	t.Parallel()

	type parsed struct {
		Records []model.SoftwareRecord `xml:"software"`
	}

	for _, style := range []model.Style{model.StyleXMLString, model.StyleXMLStream} {
		style := style
		t.Run(style.String(), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if _, err := NewXMLWriter(&buf, style).Write(testRecords()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !strings.HasPrefix(buf.String(), "<?xml") {
				t.Error("expected XML declaration")
			}

			var doc parsed
			if err := xml.Unmarshal(buf.Bytes(), &doc); err != nil {
				t.Fatalf("output is not parseable XML: %v", err)
			}
			if len(doc.Records) != 3 {
				t.Fatalf("got %d records, expected 3", len(doc.Records))
			}
			if doc.Records[0].Name != "Example Editor" {
				t.Errorf("Records[0].Name = %q", doc.Records[0].Name)
			}
		})
	}
}

// TestJSONWriter tests the array round-trip contract for N = 0, 1, >1.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	cases := [][]model.SoftwareRecord{
		{},
		testRecords()[:1],
		testRecords(),
	}

	for _, records := range cases {
		records := records
		t.Run("", func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if _, err := NewJSONWriter(&buf).Write(records); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			// Always an array, even for a single element.
			if !strings.HasPrefix(strings.TrimSpace(buf.String()), "[") {
				t.Fatalf("output is not an array: %s", buf.String())
			}

			var back []model.SoftwareRecord
			if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
				t.Fatalf("round-trip failed: %v", err)
			}
			if len(back) != len(records) {
				t.Fatalf("round-trip count = %d, expected %d", len(back), len(records))
			}
			for i := range records {
				if back[i] != records[i] {
					t.Errorf("record %d changed in round-trip: %+v != %+v", i, back[i], records[i])
				}
			}
		})
	}
}

// TestJSONWriterNilRecords tests the nil-slice edge case.
func TestJSONWriterNilRecords(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewJSONWriter(&buf).Write(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("nil records = %q, expected []", strings.TrimSpace(buf.String()))
	}
}

// TestMarkdownWriter tests the markdown table output.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewMarkdownWriter(&buf).Write(testRecords()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "# Software Audit Report") {
		t.Error("expected report heading")
	}
	if !strings.Contains(out, "Example Editor") {
		t.Error("expected record rows")
	}
	if !strings.Contains(out, "3 installed application(s)") {
		t.Error("expected record count")
	}
}

// TestMultiWriter tests fan-out to several writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	mw := NewMultiWriter(NewJSONWriter(&a), NewTextWriter(&b))
	if _, err := mw.Write(testRecords()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Len() == 0 || b.Len() == 0 {
		t.Error("expected both writers to receive output")
	}
}

// TestNewFactory tests format dispatch and style validation in New.
func TestNewFactory(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	for _, f := range model.Formats() {
		style := model.StyleNone
		switch f {
		case model.FormatHTML:
			style = model.StyleHTMLTable
		case model.FormatXML:
			style = model.StyleXMLString
		}
		if _, err := New(f, style, &buf); err != nil {
			t.Errorf("New(%s) failed: %v", f, err)
		}
	}

	if _, err := New(model.FormatHTML, model.StyleNone, &buf); !errors.Is(err, ErrStyleRequired) {
		t.Errorf("expected ErrStyleRequired, got %v", err)
	}
}
