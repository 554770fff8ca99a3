// Package database provides SQLite-based storage for inventory run
// history.
//
// Each collection run is stored as one row: host, timestamp, record
// count, and the full inventory serialized as JSON. The history powers
// the compare command, which diffs the installed-software set between
// two runs.
package database
