package config

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/softaudit/softaudit/internal/model"
)

// AppName is the application name used for XDG directory paths.
const AppName = "softaudit"

// Config holds all configuration options for softaudit.
// This struct is populated from the config file and CLI flags and passed
// through the application via dependency injection rather than global
// state.
//
// Design decision: We use a single flat struct instead of nested structs.
// The number of options is manageable, and nesting would add complexity
// without significant benefit.
type Config struct {
	// Format is the report output format.
	Format model.Format

	// HTMLStyle is the sub-format for HTML reports (table or list).
	// StyleNone means the user did not choose one; requesting an HTML
	// report in that state is a configuration error.
	HTMLStyle model.Style

	// XMLMode is the sub-format for XML reports (string or stream).
	// StyleNone means the user did not choose one; requesting an XML
	// report in that state is a configuration error.
	XMLMode model.Style

	// OutputDir is the report destination directory.
	// Empty means the default reports directory under the XDG data dir.
	OutputDir string

	// NoFile disables file output; the report is written to stdout and
	// the record sequence is handed back unchanged.
	NoFile bool

	// SaveHistory records the run in the history database.
	SaveHistory bool

	// DBDir is the directory holding the history database.
	DBDir string

	// ConfigFilePath is an explicit config file path. Empty triggers the
	// default search (current directory, then home).
	ConfigFilePath string

	// ExtraSources lists additional dpkg-style status databases to
	// enumerate alongside the platform defaults.
	ExtraSources []SourceConfig

	// Verbose enables debug-level logging.
	Verbose bool
}

// NewConfig creates a Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are non-zero, and it documents
// what the defaults are.
func NewConfig() *Config {
	return &Config{
		Format:      model.FormatTXT,
		SaveHistory: true,
		DBDir:       XDGDataDir(),
	}
}

// Style returns the sub-format applicable to the configured format:
// the HTML style for HTML, the XML mode for XML, StyleNone otherwise.
func (c *Config) Style() model.Style {
	switch c.Format {
	case model.FormatHTML:
		return c.HTMLStyle
	case model.FormatXML:
		return c.XMLMode
	default:
		return model.StyleNone
	}
}

// Validate checks if the configuration is valid.
//
// The HTML/XML style precondition is deliberately not checked here: that
// rule belongs to the reporter, which enforces it before any I/O. This
// keeps stdout-only runs and file runs behind the same check.
func (c *Config) Validate() error {
	if _, err := model.ParseFormat(string(c.Format)); err != nil {
		return ErrInvalidFormat
	}
	if c.HTMLStyle != model.StyleNone && !c.HTMLStyle.ValidFor(model.FormatHTML) {
		return ErrInvalidHTMLStyle
	}
	if c.XMLMode != model.StyleNone && !c.XMLMode.ValidFor(model.FormatXML) {
		return ErrInvalidXMLMode
	}
	if c.SaveHistory && c.DBDir == "" {
		return ErrNoDatabaseDir
	}
	return nil
}

// XDGDataDir returns the XDG data directory for softaudit.
// On Linux: ~/.local/share/softaudit
// On macOS: ~/Library/Application Support/softaudit
// On Windows: %LOCALAPPDATA%\softaudit
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for softaudit.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ReportsDir returns the default report destination directory, used when
// the user does not choose one.
func ReportsDir() string {
	return filepath.Join(XDGDataDir(), "reports")
}
