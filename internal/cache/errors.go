package cache

import "errors"

var (
	// ErrInvalidConfig is returned by Config.Build and New when options are inconsistent.
	// The returned error wraps it with the offending field.
	ErrInvalidConfig = errors.New("invalid cache config")

	// ErrInvalidExtension is returned by ExtendTTL when the delta is not strictly positive.
	// Shrinking a TTL is not supported.
	ErrInvalidExtension = errors.New("ttl extension must be positive")

	ErrClosed = errors.New("cache is closed")
)
