package model

import "errors"

var (
	// ErrNotArray is returned when an array-only operation receives another
	// field type.
	ErrNotArray = errors.New("model: field is not an array")
	// ErrNilField is returned when an operation receives a nil tree.
	ErrNilField = errors.New("model: nil field")
)
