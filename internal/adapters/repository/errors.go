package repository

import "errors"

// Sentinel kinds for artifact persistence errors.
var (
	ErrWriteArtifact   = errors.New("write artifact failed")
	ErrReadArtifact    = errors.New("read artifact failed")
	ErrMissingArtifact = errors.New("artifact file missing")
)
