package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/softaudit/softaudit/internal/model"
)

// ProgressFunc receives collection progress as a percentage of entries
// processed for the named source. It is purely observational: it must not
// modify the record sequence and is never called concurrently.
type ProgressFunc func(source string, percent int)

// Collector walks a list of sources and produces the normalized record
// sequence. It holds no state between runs.
type Collector struct {
	// sources are enumerated in order; their order defines record order.
	sources []Source

	// logger is used for structured logging during collection.
	logger *slog.Logger

	// progress, when set, is invoked as entries are processed.
	progress ProgressFunc
}

// Option configures a Collector.
type Option func(*Collector)

// WithLogger sets a custom logger for the collector.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Collector) {
		c.logger = logger
	}
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Collector) {
		c.progress = fn
	}
}

// New creates a Collector over the given sources.
func New(sources []Source, opts ...Option) *Collector {
	c := &Collector{sources: sources}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// Collect enumerates all sources and returns the normalized records.
//
// A source that fails to open does not abort the run: its error is joined
// into the returned error and collection continues with the next source,
// so callers receive partial results alongside the failure. A malformed
// entry never fails at all; its fields fall back to the sentinel values.
func (c *Collector) Collect(ctx context.Context) ([]model.SoftwareRecord, error) {
	records := make([]model.SoftwareRecord, 0, 64)

	var errs []error
	for _, src := range c.sources {
		select {
		case <-ctx.Done():
			return records, ctx.Err()
		default:
		}

		entries, err := src.Entries(ctx)
		if err != nil {
			c.logger.Warn("source unavailable", "source", src.Name(), "error", err)
			errs = append(errs, fmt.Errorf("source %s: %w", src.Name(), err))
			continue
		}

		kept := 0
		for i, entry := range entries {
			// Entries without a display name are discarded entirely.
			if strings.TrimSpace(entry.Name) == "" {
				c.reportProgress(src.Name(), i+1, len(entries))
				continue
			}

			records = append(records, model.NewSoftwareRecord(
				entry.Name,
				entry.Version,
				entry.InstallDate,
				entry.Publisher,
				entry.InstallLocation,
			))
			kept++
			c.reportProgress(src.Name(), i+1, len(entries))
		}

		c.logger.Debug("source enumerated",
			"source", src.Name(),
			"entries", len(entries),
			"kept", kept,
		)
	}

	return records, errors.Join(errs...)
}

// reportProgress invokes the progress callback with the percentage of
// entries processed so far.
func (c *Collector) reportProgress(source string, done, total int) {
	if c.progress == nil || total == 0 {
		return
	}
	c.progress(source, done*100/total)
}
