package locator

import "errors"

var (
	ErrLocator          = errors.New("locator")
	ErrNoSource         = errors.New("source does not exist")
	ErrSourceIsNotDir   = errors.New("source is not a directory")
	ErrFailedToWalkTree = errors.New("failed to walk source directory")
)
