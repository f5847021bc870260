package ui

import "errors"

var (
	ErrUI             = errors.New("ui")
	ErrNoInput        = errors.New("no more input")
	ErrFailedToPrompt = errors.New("failed to read answer")
)
