//go:build !windows

package collector

// Default dpkg database locations on Debian-family systems.
const (
	dpkgStatusPath = "/var/lib/dpkg/status"
	dpkgInfoDir    = "/var/lib/dpkg/info"
)

// DefaultSources returns the host's standard inventory sources.
// On non-Windows systems this is the dpkg status database; hosts without
// one simply yield a source-level error that the collector tolerates.
func DefaultSources() []Source {
	return []Source{
		NewStatusFileSource("dpkg", dpkgStatusPath, dpkgInfoDir),
	}
}
