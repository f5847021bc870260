package configuration

import "errors"

var (
	ErrConfiguration               = errors.New("configuration")
	ErrCantReadConfigFile          = errors.New("can't read config file")
	ErrCantParseConfigFile         = errors.New("can't parse config file")
	ErrCantWriteConfigFile         = errors.New("can't write config file")
	ErrCantParseFlags              = errors.New("can't parse command line flags")
	ErrConflictingFlags            = errors.New("conflicting flags")
	ErrSourceDirectoryNotSpecified = errors.New("source directory is required in batch mode (-source)")
	ErrFormatNotSpecified          = errors.New("audio format is required in batch mode (-format)")
	ErrInvalidFormat               = errors.New("invalid default format")
	ErrInvalidParallel             = errors.New("parallel jobs count can't be negative")
)
