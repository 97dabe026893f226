package cleantext

import "errors"

var (
	// ErrInvalidJobs is returned for a worker count of zero.
	ErrInvalidJobs = errors.New("cleantext: jobs must not be 0")

	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("cleantext: invalid config")

	// ErrInvalidException is returned when an exception pattern does not compile.
	ErrInvalidException = errors.New("cleantext: invalid exception pattern")
)
