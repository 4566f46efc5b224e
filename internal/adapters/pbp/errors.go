package pbp

import "errors"

// Sentinel kinds for dataset loading errors.
var (
	ErrOpenDataset   = errors.New("open dataset failed")
	ErrDecodeDataset = errors.New("decode dataset failed")
	ErrEmptyDataset  = errors.New("dataset contains no usable plays")
)
