package services

import (
	"errors"
)

// Error kinds surfaced by the cascade engine. Routes map these onto HTTP
// statuses; anything not matching one of them is treated as an internal
// storage failure.
var (
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
)
