package journal

import "errors"

var (
	ErrJournal               = errors.New("journal")
	ErrFailedToOpenDatabase  = errors.New("failed to open journal database")
	ErrFailedToCreateSchema  = errors.New("failed to create journal schema")
	ErrFailedToRecordRun     = errors.New("failed to record run")
	ErrFailedToListRuns      = errors.New("failed to list runs")
	ErrFailedToCloseDatabase = errors.New("failed to close journal database")
)
