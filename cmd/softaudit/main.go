// Package main provides the entry point for the softaudit CLI.
//
// softaudit enumerates the software installed on the local host,
// normalizes the entries into a flat record schema, and exports them as
// TXT, CSV, HTML, XML, JSON, or Markdown reports.
//
// Usage:
//
//	softaudit scan
//	softaudit scan --format csv --output-dir ./reports
//
// See --help for all available options.
package main

// main is the entry point for softaudit.
func main() {
	Execute()
}
