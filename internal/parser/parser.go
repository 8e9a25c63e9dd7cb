// Package parser defines the interfaces for parsing thread dump data.
package parser

import (
	"context"
	"io"

	"github.com/jvm-dump-analyser/pkg/model"
)

// DumpParser is the interface for parsing thread dumps.
type DumpParser interface {
	// Parse reads the whole dump from reader and parses it.
	Parse(ctx context.Context, reader io.Reader) (*model.DumpDocument, error)

	// ParseLines parses a dump that has already been split into lines.
	ParseLines(lines []string) (*model.DumpDocument, error)

	// SupportedFormats returns the formats supported by this parser.
	SupportedFormats() []string

	// Name returns the name of this parser.
	Name() string
}
