package contract

import "errors"

// Error taxonomy for the whole tool. All failures are wrapped around one of
// these sentinels so callers can classify them with errors.Is. None are
// retried; each surfaces a human-readable message and a non-zero exit.
var (
	// ErrRepositoryNotFound indicates the given location is not a valid
	// Git repository.
	ErrRepositoryNotFound = errors.New("repository not found")

	// ErrAccess indicates the underlying tool cannot be invoked, or the
	// repository cannot be opened for permission reasons.
	ErrAccess = errors.New("repository access failed")

	// ErrConfiguration indicates an invalid option value.
	ErrConfiguration = errors.New("invalid configuration")
)
