package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// HomePlaceholder replaces the user's home directory in logged paths.
const HomePlaceholder = "~"

// MaskHomeHandler wraps an slog.Handler and rewrites the user's home
// directory out of string attribute values before they reach the
// underlying handler.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because it integrates with standard slog APIs and works with any
// underlying handler (text, JSON, etc.).
type MaskHomeHandler struct {
	// handler is the underlying slog handler that receives masked records.
	handler slog.Handler

	// home is the home directory prefix to mask. Empty disables masking.
	home string
}

// NewMaskHomeHandler creates a MaskHomeHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used.
func NewMaskHomeHandler(handler slog.Handler) *MaskHomeHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	home, _ := os.UserHomeDir()
	return &MaskHomeHandler{handler: handler, home: home}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *MaskHomeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it to the underlying handler.
func (h *MaskHomeHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.maskAttr(a))
		return true
	})

	return h.handler.Handle(ctx, masked)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are masked before being added.
func (h *MaskHomeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	maskedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		maskedAttrs[i] = h.maskAttr(a)
	}
	return &MaskHomeHandler{handler: h.handler.WithAttrs(maskedAttrs), home: h.home}
}

// WithGroup returns a new handler with the given group name.
func (h *MaskHomeHandler) WithGroup(name string) slog.Handler {
	return &MaskHomeHandler{handler: h.handler.WithGroup(name), home: h.home}
}

// maskAttr masks a single attribute, recursively handling groups.
func (h *MaskHomeHandler) maskAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		maskedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			maskedAttrs[i] = h.maskAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(maskedAttrs...)}
	}

	if h.home == "" || a.Value.Kind() != slog.KindString {
		return a
	}

	value := a.Value.String()
	if !strings.Contains(value, h.home) {
		return a
	}
	return slog.String(a.Key, strings.ReplaceAll(value, h.home, HomePlaceholder))
}

// NewLogger creates a *slog.Logger that writes text records to w with
// home-directory masking applied.
// If verbose is true the level is Debug; otherwise Warn.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	return slog.New(NewMaskHomeHandler(slog.NewTextHandler(w, opts)))
}
