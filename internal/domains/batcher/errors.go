package batcher

import "errors"

var (
	ErrBatcher             = errors.New("batcher")
	ErrConnectDependencies = errors.New("failed to connect dependencies")
	ErrWorkerPanic         = errors.New("conversion worker panicked")
)
