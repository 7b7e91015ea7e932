package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// ContextExtractor pulls a slog attribute out of a request context.
// Extraction runs per log call so request-scoped values stay fresh.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// New creates a JSON logger writing to stdout at Info level, decorated
// with the given context extractors.
func New(extractors ...ContextExtractor) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(Decorate(h, extractors...))
}

// NewNope creates a logger that discards everything. The adapter's default
// when logging is not configured.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Decorate wraps a handler so context extractors run on every record.
// Nil extractors are dropped.
func Decorate(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	clean := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	return &decorator{next: next, extractors: clean}
}

// decorator injects context-extracted attributes before delegating.
type decorator struct {
	next       slog.Handler
	extractors []ContextExtractor
}

func (d *decorator) Enabled(ctx context.Context, level slog.Level) bool {
	return d.next.Enabled(ctx, level)
}

func (d *decorator) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range d.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return d.next.Handle(ctx, rec)
}

func (d *decorator) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &decorator{next: d.next.WithAttrs(attrs), extractors: d.extractors}
}

func (d *decorator) WithGroup(name string) slog.Handler {
	return &decorator{next: d.next.WithGroup(name), extractors: d.extractors}
}
