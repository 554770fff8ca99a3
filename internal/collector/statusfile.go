package collector

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// StatusFileSource reads a dpkg-style status database: RFC 822 style
// paragraphs separated by blank lines, one paragraph per package.
//
// Fields consumed: Package (display name), Version, Maintainer
// (publisher), Status (only "installed" paragraphs are kept) and
// Install-Date (compact YYYYMMDD, present in some derivative databases).
// When Install-Date is absent and an info directory is configured, the
// modification time of <infoDir>/<package>.list stands in for it, since
// dpkg itself does not record install dates.
type StatusFileSource struct {
	// name identifies the source in logs and progress output.
	name string

	// path is the status database file.
	path string

	// infoDir is the dpkg info directory used to derive install dates.
	// Empty disables date derivation.
	infoDir string
}

// NewStatusFileSource creates a source over a dpkg-style status file.
func NewStatusFileSource(name, path, infoDir string) *StatusFileSource {
	return &StatusFileSource{name: name, path: path, infoDir: infoDir}
}

// Name returns the source's name.
func (s *StatusFileSource) Name() string {
	return s.name
}

// Entries parses the status file into raw entries.
func (s *StatusFileSource) Entries(ctx context.Context) ([]RawEntry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open status database %s: %w", s.path, err)
	}
	defer f.Close()

	var entries []RawEntry
	fields := make(map[string]string)

	flush := func() {
		if len(fields) == 0 {
			return
		}
		if entry, ok := s.entryFromFields(fields); ok {
			entries = append(entries, entry)
		}
		fields = make(map[string]string)
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		line := scanner.Text()
		if line == "" {
			flush()
			continue
		}
		// Continuation lines (long descriptions) carry no fields we use.
		if line[0] == ' ' || line[0] == '\t' {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fields[key] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read status database %s: %w", s.path, err)
	}
	flush()

	return entries, nil
}

// entryFromFields converts one parsed paragraph into a raw entry.
// Returns false for paragraphs that describe non-installed packages.
func (s *StatusFileSource) entryFromFields(fields map[string]string) (RawEntry, bool) {
	// dpkg keeps removed-but-not-purged packages in the status file;
	// only currently installed ones belong in the inventory.
	if status, ok := fields["Status"]; ok && !strings.HasSuffix(status, " installed") {
		return RawEntry{}, false
	}

	name := fields["Package"]
	installDate := fields["Install-Date"]
	if installDate == "" && s.infoDir != "" && name != "" {
		installDate = s.installDateFromInfoDir(name)
	}

	return RawEntry{
		Name:            name,
		Version:         fields["Version"],
		InstallDate:     installDate,
		Publisher:       fields["Maintainer"],
		InstallLocation: fields["Install-Location"],
	}, true
}

// installDateFromInfoDir derives a YYYYMMDD install date from the mtime
// of the package's file list. Returns empty when unavailable.
func (s *StatusFileSource) installDateFromInfoDir(pkg string) string {
	info, err := os.Stat(filepath.Join(s.infoDir, pkg+".list"))
	if err != nil {
		return ""
	}
	return info.ModTime().Format("20060102")
}
