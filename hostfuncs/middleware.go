package hostfuncs

import (
	"log/slog"
	"time"

	"github.com/dop251/goja"
)

// Middleware wraps a NativeFunc to add cross-cutting behavior around
// capability calls. Middleware executes in FIFO order (first registered
// wraps outermost).
type Middleware func(name string, next NativeFunc) NativeFunc

// LoggingMiddleware returns a middleware that records every capability call
// and its duration at debug level.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(name string, next NativeFunc) NativeFunc {
		return func(call goja.FunctionCall) goja.Value {
			start := time.Now()
			v := next(call)
			logger.Debug("capability call",
				slog.String("capability", name),
				slog.Duration("duration", time.Since(start)),
			)
			return v
		}
	}
}
