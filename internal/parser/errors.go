package parser

import "errors"

var (
	// ErrEmptyInput is returned when the input contains no lines at all.
	ErrEmptyInput = errors.New("empty input")

	// ErrLineTooLong is returned when a single line exceeds the configured limit.
	ErrLineTooLong = errors.New("line too long")
)
