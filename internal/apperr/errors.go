package apperr

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrInvalid           = errors.New("invalid input")
	ErrUnsupportedFormat = errors.New("unsupported format")
)
