package model

import "testing"

// TestParseFormat tests format parsing from user input.
func TestParseFormat(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"txt", FormatTXT, false},
		{"csv", FormatCSV, false},
		{"HTML", FormatHTML, false},
		{"xml", FormatXML, false},
		{"json", FormatJSON, false},
		{"markdown", FormatMarkdown, false},
		{"md", FormatMarkdown, false},
		{" json ", FormatJSON, false},
		{"yaml", "", true},
		{"", "", true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseFormat(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Errorf("ParseFormat(%q) expected error, got %q", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q) unexpected error: %v", tc.input, err)
			}
			if got != tc.expected {
				t.Errorf("ParseFormat(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}

// TestFormatExtension tests the file extension mapping.
func TestFormatExtension(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		format   Format
		expected string
	}{
		{FormatTXT, "txt"},
		{FormatCSV, "csv"},
		{FormatHTML, "html"},
		{FormatXML, "xml"},
		{FormatJSON, "json"},
		{FormatMarkdown, "md"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.format.String(), func(t *testing.T) {
			t.Parallel()
			if got := tc.format.Extension(); got != tc.expected {
				t.Errorf("Extension() = %q, expected %q", got, tc.expected)
			}
		})
	}
}

// TestRequiresStyle tests that only HTML and XML carry a style.
func TestRequiresStyle(t *testing.T) {
	t.Parallel()

	for _, f := range Formats() {
		expected := f == FormatHTML || f == FormatXML
		if got := f.RequiresStyle(); got != expected {
			t.Errorf("%s.RequiresStyle() = %v, expected %v", f, got, expected)
		}
	}
}

// TestStyleValidFor tests style/format compatibility.
func TestStyleValidFor(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		style    Style
		format   Format
		expected bool
	}{
		{"table for html", StyleHTMLTable, FormatHTML, true},
		{"list for html", StyleHTMLList, FormatHTML, true},
		{"string for xml", StyleXMLString, FormatXML, true},
		{"stream for xml", StyleXMLStream, FormatXML, true},
		{"none for html", StyleNone, FormatHTML, false},
		{"none for xml", StyleNone, FormatXML, false},
		{"xml style for html", StyleXMLStream, FormatHTML, false},
		{"html style for xml", StyleHTMLTable, FormatXML, false},
		{"anything for json", StyleHTMLTable, FormatJSON, true},
		{"none for txt", StyleNone, FormatTXT, true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.style.ValidFor(tc.format); got != tc.expected {
				t.Errorf("ValidFor(%s, %s) = %v, expected %v", tc.style, tc.format, got, tc.expected)
			}
		})
	}
}

// TestParseStyles tests HTML and XML style parsing.
func TestParseStyles(t *testing.T) {
	t.Parallel()

	t.Run("html styles", func(t *testing.T) {
		t.Parallel()

		if s, err := ParseHTMLStyle("Table"); err != nil || s != StyleHTMLTable {
			t.Errorf("ParseHTMLStyle(Table) = %q, %v", s, err)
		}
		if s, err := ParseHTMLStyle("list"); err != nil || s != StyleHTMLList {
			t.Errorf("ParseHTMLStyle(list) = %q, %v", s, err)
		}
		if _, err := ParseHTMLStyle("grid"); err == nil {
			t.Error("ParseHTMLStyle(grid) expected error")
		}
	})

	t.Run("xml styles", func(t *testing.T) {
		t.Parallel()

		if s, err := ParseXMLStyle("string"); err != nil || s != StyleXMLString {
			t.Errorf("ParseXMLStyle(string) = %q, %v", s, err)
		}
		if s, err := ParseXMLStyle("STREAM"); err != nil || s != StyleXMLStream {
			t.Errorf("ParseXMLStyle(STREAM) = %q, %v", s, err)
		}
		if _, err := ParseXMLStyle("dom"); err == nil {
			t.Error("ParseXMLStyle(dom) expected error")
		}
	})
}
