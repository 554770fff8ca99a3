// Package log provides privacy-aware logging built on top of the
// standard slog package.
//
// Installed-software inventories carry filesystem paths that embed the
// local username (install locations under the user's profile or home
// directory). The MaskHomeHandler rewrites such paths in log attributes
// so debug logs can be shared or attached to bug reports without
// disclosing who ran the audit.
//
// Usage:
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
package log
