package formats

import "errors"

var (
	ErrFormats         = errors.New("formats")
	ErrInvalidSelector = errors.New("invalid format selector")
)
