package write

import "errors"

// Ошибки записи
var (
	// ErrStaleWrite the caller's expected revision or the local snapshot is out of date
	ErrStaleWrite = errors.New("stale write")

	// ErrWriteInProgress another write to the same record has not finished yet
	ErrWriteInProgress = errors.New("write already in progress for this record")

	// ErrConflict the remote row changed since the base revision
	ErrConflict = errors.New("write conflict")

	// ErrRemoteUnavailable the remote store could not be reached after retries; safe to retry
	ErrRemoteUnavailable = errors.New("remote store unavailable")

	// ErrRemoteRejected the remote store refused the write
	ErrRemoteRejected = errors.New("remote store rejected write")

	// ErrNotFound no record with the given id
	ErrNotFound = errors.New("record not found")
)
