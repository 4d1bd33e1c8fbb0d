package engine

import "errors"

// ErrCancelled is returned by Solve when ctx is done before every batch
// finished inference.
var ErrCancelled = errors.New("engine: solve cancelled")
