package models

import "errors"

// Ошибки валидации значений по схеме
var (
	// ErrUnknownField indicates a field key that is not part of the schema
	ErrUnknownField = errors.New("unknown field")

	// ErrInvalidValue indicates a value that does not fit the field type
	ErrInvalidValue = errors.New("invalid field value")

	// ErrRequiredField indicates a missing value for a required field
	ErrRequiredField = errors.New("required field is empty")

	// ErrInvalidTransition indicates an illegal PendingWrite state change
	ErrInvalidTransition = errors.New("invalid write status transition")
)
