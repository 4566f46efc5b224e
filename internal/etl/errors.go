package etl

import "errors"

// ErrNotConfigured is returned when the runner is missing its loader or
// artifact store.
var ErrNotConfigured = errors.New("etl runner not configured")
