package remote

import "errors"

// Ошибки удаленного хранилища
var (
	// ErrUnavailable transient failure: network, timeout, quota or open circuit breaker
	ErrUnavailable = errors.New("remote store unavailable")

	// ErrRejected the remote store refused the request
	ErrRejected = errors.New("remote store rejected request")

	// ErrConflict the stored revision differs from the base revision of the write
	ErrConflict = errors.New("revision conflict")

	// ErrNotFound no row with the given id
	ErrNotFound = errors.New("record not found")
)

// IsRetryable reports whether err is worth retrying.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
