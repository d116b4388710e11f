package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrMissingField  = errors.New("missing field")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrEmptyDataset  = errors.New("empty dataset")
	ErrNotFitted     = errors.New("model not fitted")
)

// Store errors
var (
	ErrDuplicate        = errors.New("duplicate entry")
	ErrStoreUnavailable = errors.New("store unavailable")
)
