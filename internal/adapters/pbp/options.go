package pbp

import "github.com/openfield/gridiron/pkg/logger"

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithRowLimit caps the number of accepted plays. Used by smoke runs
// against the full-season export.
func WithRowLimit(limit int) Option {
	return func(l *Loader) {
		if limit > 0 {
			l.rowLimit = limit
		}
	}
}

// WithLogger sets a custom logger for the loader.
func WithLogger(log logger.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}
