package roster

import "errors"

// ErrNotFound no record with the given id in the current snapshot
var ErrNotFound = errors.New("record not found")
