package sorting

import "errors"

// Sentinel kinds for sorting errors.
var (
	ErrUnknownKey       = errors.New("unknown sort key")
	ErrUnknownDirection = errors.New("unknown sort direction")
)
