package tsvparse

import "github.com/pkg/errors"

// Sentinel kinds for parser errors.
var (
	ErrRead      = errors.New("read pal sheet")
	ErrTypeTable = errors.New("read pal type table")
)
