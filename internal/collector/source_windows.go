//go:build windows

package collector

import (
	"context"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// Uninstall registry paths for the two application registration views.
const (
	uninstallPath64 = `Software\Microsoft\Windows\CurrentVersion\Uninstall`
	uninstallPath32 = `Software\Wow6432Node\Microsoft\Windows\CurrentVersion\Uninstall`
)

// registrySource reads one view of the Windows uninstall registry.
type registrySource struct {
	// name identifies the view in logs and progress output.
	name string

	// path is the uninstall key path under HKEY_LOCAL_MACHINE.
	path string
}

// DefaultSources returns the host's standard inventory sources: the
// 64-bit and 32-bit (WOW6432Node) application registration views.
func DefaultSources() []Source {
	return []Source{
		&registrySource{name: "registry-64bit", path: uninstallPath64},
		&registrySource{name: "registry-32bit", path: uninstallPath32},
	}
}

// Name returns the source's name.
func (s *registrySource) Name() string {
	return s.name
}

// Entries reads every application subkey from the uninstall view.
// Unreadable subkeys are skipped; one broken registration must not
// abort enumeration of the rest.
func (s *registrySource) Entries(ctx context.Context) ([]RawEntry, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, s.path, registry.READ)
	if err != nil {
		return nil, fmt.Errorf("failed to open uninstall key %s: %w", s.path, err)
	}
	defer key.Close()

	subKeys, err := key.ReadSubKeyNames(0)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate uninstall key %s: %w", s.path, err)
	}

	entries := make([]RawEntry, 0, len(subKeys))
	for _, sub := range subKeys {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		appKey, err := registry.OpenKey(registry.LOCAL_MACHINE, s.path+`\`+sub, registry.QUERY_VALUE)
		if err != nil {
			continue
		}

		entries = append(entries, RawEntry{
			Name:            stringValue(appKey, "DisplayName"),
			Version:         stringValue(appKey, "DisplayVersion"),
			InstallDate:     stringValue(appKey, "InstallDate"),
			Publisher:       stringValue(appKey, "Publisher"),
			InstallLocation: stringValue(appKey, "InstallLocation"),
		})
		appKey.Close()
	}

	return entries, nil
}

// stringValue reads a string value from the key, treating any error as
// an absent field.
func stringValue(key registry.Key, name string) string {
	v, _, err := key.GetStringValue(name)
	if err != nil {
		return ""
	}
	return v
}
