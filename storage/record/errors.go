package record

import "errors"

// ErrNotFound indicates that the targeted row does not exist.
var ErrNotFound = errors.New("record not found")
