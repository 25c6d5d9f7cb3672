package domain

import "errors"

var (
	ErrNotFound   = errors.New("binding not found")
	ErrConflict   = errors.New("binding code already exists")
	ErrValidation = errors.New("validation failed")
)
