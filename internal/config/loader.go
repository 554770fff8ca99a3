package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/softaudit/softaudit/internal/model"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".softaudit"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// SourceConfig describes one additional dpkg-style status database to
// enumerate alongside the platform defaults.
type SourceConfig struct {
	// Name identifies the source in logs and progress output.
	Name string `yaml:"name"`

	// Path is the status database file.
	Path string `yaml:"path"`

	// InfoDir is an optional dpkg info directory used to derive install
	// dates from package file-list modification times.
	InfoDir string `yaml:"info_dir,omitempty"`
}

// File represents the structure of the .softaudit configuration file.
// Everything in it is optional; CLI flags override these values.
type File struct {
	// Format is the default report format.
	Format string `yaml:"format,omitempty"`

	// HTMLStyle is the default HTML sub-format (table or list).
	HTMLStyle string `yaml:"html_style,omitempty"`

	// XMLMode is the default XML sub-format (string or stream).
	XMLMode string `yaml:"xml_mode,omitempty"`

	// OutputDir is the default report destination directory.
	OutputDir string `yaml:"output_dir,omitempty"`

	// SaveHistory controls recording runs in the history database.
	// Pointer so "not set" is distinguishable from "false".
	SaveHistory *bool `yaml:"save_history,omitempty"`

	// Sources lists additional status databases to enumerate.
	Sources []SourceConfig `yaml:"sources,omitempty"`
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers
// should handle this based on whether the path was explicitly specified
// by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// Apply merges the file's settings into the config. Only values set in
// the file are applied; the caller applies CLI flags afterwards so flags
// win over the file.
func (cf *File) Apply(c *Config) error {
	if cf.Format != "" {
		f, err := model.ParseFormat(cf.Format)
		if err != nil {
			return err
		}
		c.Format = f
	}
	if cf.HTMLStyle != "" {
		s, err := model.ParseHTMLStyle(cf.HTMLStyle)
		if err != nil {
			return err
		}
		c.HTMLStyle = s
	}
	if cf.XMLMode != "" {
		s, err := model.ParseXMLStyle(cf.XMLMode)
		if err != nil {
			return err
		}
		c.XMLMode = s
	}
	if cf.OutputDir != "" {
		c.OutputDir = cf.OutputDir
	}
	if cf.SaveHistory != nil {
		c.SaveHistory = *cf.SaveHistory
	}
	if len(cf.Sources) > 0 {
		c.ExtraSources = append(c.ExtraSources, cf.Sources...)
	}
	return nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .softaudit in the current directory
// 3. Look for .softaudit in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
