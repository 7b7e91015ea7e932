package middlewares

import (
	"log/slog"
	"net/http"
	"runtime"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// RecoverConfig configures the recover middleware.
type RecoverConfig struct {
	Logger            *slog.Logger
	StackSize         int
	DisablePrintStack bool
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverLogger sets the logger for recovered panics.
func WithRecoverLogger(l *slog.Logger) RecoverOption {
	return func(cfg *RecoverConfig) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

// WithRecoverStackSize sets the maximum stack trace size.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.StackSize = size
	}
}

// WithRecoverDisablePrintStack disables including stack traces in logs.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisablePrintStack = true
	}
}

// Recover returns middleware that recovers from panics, including panics
// raised inside prop computations during Render, logs them, and answers
// with a plain 500. The adapter itself never catches resolver failures;
// this is the surrounding layer that owns them.
func Recover(opts ...RecoverOption) func(http.Handler) http.Handler {
	cfg := &RecoverConfig{
		Logger:    slog.Default(),
		StackSize: DefaultStackSize,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if cfg.DisablePrintStack {
						cfg.Logger.ErrorContext(r.Context(), "panic recovered", slog.Any("panic", rec))
					} else {
						stack := make([]byte, cfg.StackSize)
						n := runtime.Stack(stack, false)
						cfg.Logger.ErrorContext(r.Context(), "panic recovered",
							slog.Any("panic", rec),
							slog.String("stack", string(stack[:n])),
						)
					}

					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
