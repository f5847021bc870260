package domains

import "errors"

// Error kinds shared by the domains. Domain packages wrap them together with
// their own package error, so callers can match on either.
var (
	ErrInvalidPath       = errors.New("invalid path")
	ErrInvalidInput      = errors.New("invalid input")
	ErrMissingDependency = errors.New("missing dependency")
	ErrToolError         = errors.New("external tool failed")
	ErrIOFailure         = errors.New("i/o failure")
)
