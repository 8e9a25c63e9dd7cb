package analyzer

import (
	apperrors "github.com/jvm-dump-analyser/pkg/errors"
)

var (
	// ErrNoStorage is returned when an analyzer is built without a dump source.
	ErrNoStorage = apperrors.New(apperrors.CodeConfigError, "no dump storage configured")

	// ErrNoSource is returned when a request names no dump file.
	ErrNoSource = apperrors.New(apperrors.CodeInvalidInput, "no dump file given")
)
