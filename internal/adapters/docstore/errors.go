package docstore

import "errors"

// Sentinel kinds for document-store errors.
var (
	ErrConnect     = errors.New("docstore connect failed")
	ErrCommitBatch = errors.New("docstore batch commit failed")
)
