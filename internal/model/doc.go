// Package model defines the core data structures for softaudit.
//
// This package contains the SoftwareRecord schema, the Inventory wrapper
// for a complete collection run, and the Format/Style enumerations used
// to select report output.
//
// Design decision: Data structures are kept separate from the code that
// produces them (collector) and consumes them (report, database) so that
// new output formats can be added without touching the core schema.
package model
