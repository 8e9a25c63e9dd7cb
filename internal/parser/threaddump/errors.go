package threaddump

import (
	"fmt"

	apperrors "github.com/jvm-dump-analyser/pkg/errors"
)

// FormatError reports a header, state or synchronizer line that does not
// match its expected pattern.
type FormatError struct {
	// LineNumber is 1-based; zero when the line was parsed in isolation.
	LineNumber int
	Line       string
	Reason     string
}

func (e *FormatError) Error() string {
	if e.LineNumber > 0 {
		return fmt.Sprintf("line %d: %s: %q", e.LineNumber, e.Reason, e.Line)
	}
	return fmt.Sprintf("%s: %q", e.Reason, e.Line)
}

// Unwrap lets errors.Is match apperrors.ErrFormatError.
func (e *FormatError) Unwrap() error {
	return apperrors.ErrFormatError
}

// UnknownStateError reports a thread state token outside the known set.
type UnknownStateError struct {
	LineNumber int
	Line       string
	State      string
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("line %d: unknown thread state %q: %q", e.LineNumber, e.State, e.Line)
}

// Unwrap lets errors.Is match apperrors.ErrUnknownState.
func (e *UnknownStateError) Unwrap() error {
	return apperrors.ErrUnknownState
}

// TruncatedInputError reports input that ends before a thread block is complete.
type TruncatedInputError struct {
	// LineNumber is the 1-based number of the line that was expected.
	LineNumber int
	// Expected names the part of the block being read.
	Expected string
	// LastLine is the raw content of the final input line, if any.
	LastLine string
}

func (e *TruncatedInputError) Error() string {
	return fmt.Sprintf("line %d: input ended while reading %s (last line %q)", e.LineNumber, e.Expected, e.LastLine)
}

// Unwrap lets errors.Is match apperrors.ErrTruncatedInput.
func (e *TruncatedInputError) Unwrap() error {
	return apperrors.ErrTruncatedInput
}

// atLine fills in the line number of a FormatError produced by HeaderParser.
func atLine(err error, lineNumber int) error {
	if fe, ok := err.(*FormatError); ok && fe.LineNumber == 0 {
		fe.LineNumber = lineNumber
	}
	return err
}
