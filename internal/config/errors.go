package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrInvalidFormat is returned when the report format is not one of
	// the supported values.
	ErrInvalidFormat = errors.New("invalid report format: must be txt, csv, html, xml, json, or markdown")

	// ErrInvalidHTMLStyle is returned when the HTML style is set but is
	// not table or list.
	ErrInvalidHTMLStyle = errors.New("invalid HTML style: must be table or list")

	// ErrInvalidXMLMode is returned when the XML mode is set but is not
	// string or stream.
	ErrInvalidXMLMode = errors.New("invalid XML mode: must be string or stream")

	// ErrNoDatabaseDir is returned when history saving is enabled without
	// a database directory.
	ErrNoDatabaseDir = errors.New("no database directory: history saving requires a database location")
)
