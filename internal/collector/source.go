package collector

import "context"

// RawEntry is one unprocessed installed-software entry as read from a
// source, before filtering and normalization. Absent fields are empty
// strings; InstallDate carries the source's compact YYYYMMDD form.
type RawEntry struct {
	// Name is the application display name. Entries with an empty name
	// are discarded by the collector.
	Name string

	// Version is the raw display version.
	Version string

	// InstallDate is the raw install date in YYYYMMDD form.
	InstallDate string

	// Publisher is the raw vendor name.
	Publisher string

	// InstallLocation is the raw install directory.
	InstallLocation string
}

// Source enumerates raw entries from one inventory location.
//
// Design decision: We use an interface rather than function types because
// sources carry configuration state (registry view, file path) and a
// Name() for logging, mirroring how pipeline steps are modeled elsewhere
// in this codebase.
type Source interface {
	// Name returns the source's name for logging and progress reporting.
	Name() string

	// Entries reads all raw entries from the source.
	// The read is best-effort at the source level: an error means the
	// whole source is unavailable, not that one entry is malformed.
	Entries(ctx context.Context) ([]RawEntry, error)
}
