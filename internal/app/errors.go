package service

import "errors"

// ErrNoSnapshot is returned when the service is started without a
// snapshot or a store to load one from.
var ErrNoSnapshot = errors.New("no snapshot available")
