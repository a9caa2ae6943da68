package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidExecContext = errors.New("invalid executor context")
	ErrContentUnavailable = errors.New("verse content unavailable")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
)
