package tablecheck

import "github.com/pkg/errors"

// Error constants.
var (
	ErrUnhealthy = errors.New("service unhealthy")
	ErrStatus    = errors.New("unexpected status")
	ErrMismatch  = errors.New("table invariant violated")
	ErrNoPals    = errors.New("service returned no pals")
)
