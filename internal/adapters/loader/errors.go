package loader

import "github.com/pkg/errors"

// Sentinel kinds for loader errors.
var (
	// ErrFlatRecords means the mandatory pals.json input could not be
	// fetched or decoded. No dataset is produced.
	ErrFlatRecords = errors.New("flat records unavailable")
	// ErrStatus is returned by HTTPSource for any non-200 response.
	ErrStatus = errors.New("unexpected http status")
	// ErrNilSource is returned when Load is called without a Source.
	ErrNilSource = errors.New("nil source")
)
