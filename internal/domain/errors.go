package domain

import "errors"

// Store-level errors. Repository implementations return these; services
// translate them into the user-facing taxonomy below.
var (
	ErrStoreNotFound  = errors.New("store: record not found")
	ErrStoreDuplicate = errors.New("store: duplicate identifier")
)

// Service-level errors. Every failure returned to a caller wraps one of
// these and names the offending id or field in its message.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInsufficientStock = errors.New("insufficient stock")
)
