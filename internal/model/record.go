package model

import "time"

// Sentinel field values used when source data is absent or malformed.
const (
	// NotAvailable is used for optional string fields the source did not provide.
	NotAvailable = "N/A"

	// UnknownDate is used when the source has no install date at all.
	UnknownDate = "Unknown"

	// InvalidDate is used when the source install date exists but does not
	// parse as a compact YYYYMMDD date.
	InvalidDate = "Invalid Date"
)

// installDateLayout is the compact date form used by the uninstall registry.
const installDateLayout = "20060102"

// isoDateLayout is the normalized form written to reports.
const isoDateLayout = "2006-01-02"

// SoftwareRecord is one normalized installed-software entry.
//
// Invariant: Name is never empty. Entries without a display name are
// discarded during collection, and the remaining optional fields are
// normalized so they are never empty strings either.
type SoftwareRecord struct {
	// Name is the application display name. Required.
	Name string `json:"name" xml:"name"`

	// Version is the display version, or NotAvailable.
	Version string `json:"version" xml:"version"`

	// InstallDate is the install date in YYYY-MM-DD form, or one of the
	// UnknownDate / InvalidDate sentinels.
	InstallDate string `json:"install_date" xml:"installDate"`

	// Publisher is the vendor name, or NotAvailable.
	Publisher string `json:"publisher" xml:"publisher"`

	// InstallLocation is the install directory, or NotAvailable.
	InstallLocation string `json:"install_location" xml:"installLocation"`
}

// NormalizeDate converts a raw install date into its normalized form.
// An empty input yields UnknownDate. A value that does not strictly parse
// as YYYYMMDD yields InvalidDate rather than an error: a single malformed
// record must never abort enumeration.
func NormalizeDate(raw string) string {
	if raw == "" {
		return UnknownDate
	}
	t, err := time.Parse(installDateLayout, raw)
	if err != nil {
		return InvalidDate
	}
	return t.Format(isoDateLayout)
}

// orNotAvailable returns s, or NotAvailable when s is empty.
func orNotAvailable(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

// NewSoftwareRecord builds a normalized record from raw source fields.
// The caller is responsible for discarding entries with an empty name
// before calling this.
func NewSoftwareRecord(name, version, installDate, publisher, location string) SoftwareRecord {
	return SoftwareRecord{
		Name:            name,
		Version:         orNotAvailable(version),
		InstallDate:     NormalizeDate(installDate),
		Publisher:       orNotAvailable(publisher),
		InstallLocation: orNotAvailable(location),
	}
}

// FieldHeaders returns the column headers shared by the tabular report
// formats (TXT, CSV, HTML table, Markdown). The order matches Fields.
func FieldHeaders() []string {
	return []string{"Name", "Version", "Install Date", "Publisher", "Install Location"}
}

// Fields returns the record's values in FieldHeaders order.
func (r SoftwareRecord) Fields() []string {
	return []string{r.Name, r.Version, r.InstallDate, r.Publisher, r.InstallLocation}
}
