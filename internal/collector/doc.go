// Package collector enumerates installed-software entries from the host.
//
// A Source yields raw entries from one inventory location (a Windows
// uninstall registry view, or a dpkg-style status database elsewhere).
// The Collector walks all configured sources in order, discards entries
// without a display name, and normalizes the remaining fields into
// model.SoftwareRecord values.
//
// Collection is read-only and strictly sequential: records appear in the
// output in the order the sources enumerate them.
package collector
