package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsercodeTaken      = errors.New("usercode already exists")
	ErrInvalidCredentials = errors.New("invalid usercode or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrValidation         = errors.New("validation failed")
)
