package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/softaudit/softaudit/internal/config"
	"github.com/softaudit/softaudit/internal/model"
)

// filePrefix is the base name shared by all report files.
const filePrefix = "SoftAudit"

// timestampLayout gives second resolution so repeated runs do not
// collide.
const timestampLayout = "20060102_150405"

// Filename returns the report file name for the format at the given
// time: SoftAudit_<yyyyMMdd_HHmmss>.<ext>.
func Filename(format model.Format, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", filePrefix, now.Format(timestampLayout), format.Extension())
}

// WriteFile serializes the records in the requested format and writes
// them to a timestamped file under destDir, returning the path written.
//
// The style precondition is checked before any I/O: a missing or wrong
// style for HTML/XML fails without touching the filesystem. An empty or
// whitespace destDir falls back to the default reports directory, which
// is created (with parents) if missing; creation failure propagates.
// The report is rendered to memory first so a failed write never leaves
// a partial file behind.
func WriteFile(records []model.SoftwareRecord, format model.Format, style model.Style, destDir string) (string, error) {
	var buf bytes.Buffer
	w, err := New(format, style, &buf)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(destDir) == "" {
		destDir = config.ReportsDir()
	}
	if err := os.MkdirAll(destDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create report directory %s: %w", destDir, err)
	}

	if _, err := w.Write(records); err != nil {
		return "", fmt.Errorf("failed to render %s report: %w", format, err)
	}

	path := filepath.Join(destDir, Filename(format, time.Now()))
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return "", fmt.Errorf("failed to write report file %s: %w", path, err)
	}

	return path, nil
}
