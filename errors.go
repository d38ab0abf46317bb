package partition

import "errors"

var (
	ErrConcurrentAccess = errors.New("concurrent access to exclusive slice")
)
