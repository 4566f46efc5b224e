package docstore

import (
	"google.golang.org/api/option"

	"github.com/openfield/gridiron/pkg/logger"
)

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithBatchSize sets the number of documents per batch commit. Values
// outside (0, 500] are ignored; Firestore rejects larger requests.
func WithBatchSize(size int) Option {
	return func(s *Store) {
		if size > 0 && size <= 500 {
			s.batchSize = size
		}
	}
}

// WithCredentialsFile authenticates with a service account key file
// instead of the ambient environment.
func WithCredentialsFile(path string) Option {
	return func(s *Store) {
		if path != "" {
			s.clientOpts = append(s.clientOpts, option.WithCredentialsFile(path))
		}
	}
}

// WithLogger sets a custom logger for the store.
func WithLogger(log logger.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}
