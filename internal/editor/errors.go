package editor

import "errors"

var (
	ErrNoSelection     = errors.New("no element selected")
	ErrTabNotFound     = errors.New("tab not found")
	ErrNotSaved        = errors.New("dashboard has not been saved yet")
	ErrSessionNotFound = errors.New("editor session not found")
)
