package domain

import "errors"

var (
	ErrNotFound        = errors.New("dashboard not found")
	ErrElementNotFound = errors.New("element not found")
	ErrValidation      = errors.New("validation failed")
)
