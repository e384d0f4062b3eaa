package domain

import "errors"

var (
	ErrZeroScale      = errors.New("carrier scale must be non-zero on both axes")
	ErrNotPickable    = errors.New("entity is not pickable")
	ErrEntityNotFound = errors.New("entity not found")
	ErrUnknownCommand = errors.New("unknown command")
)
