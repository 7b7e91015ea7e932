// Package logger builds slog loggers the adapter and applications share:
// a JSON stdout factory, a no-op logger for tests, a context-extractor
// decorator for request-scoped attributes, and an optional Sentry fan-out.
package logger
