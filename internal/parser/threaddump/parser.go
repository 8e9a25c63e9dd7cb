// Package threaddump parses JVM thread dumps in the
//
//	"<name>" - Thread t@<id>
//	   java.lang.Thread.State: <STATE>
//
// block layout into thread records.
package threaddump

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jvm-dump-analyser/internal/parser"
	apperrors "github.com/jvm-dump-analyser/pkg/errors"
	"github.com/jvm-dump-analyser/pkg/model"
	"github.com/jvm-dump-analyser/pkg/utils"
)

const (
	// DefaultMaxLineBytes is the default limit for a single input line.
	DefaultMaxLineBytes = 1024 * 1024

	// headerLines is the number of document header lines before the first block.
	headerLines = 2

	synchronizersTitle  = "Locked ownable synchronizers:"
	synchronizerPrefix  = "- "
	initialScanBufBytes = 64 * 1024
)

// ParserOptions holds configuration options for the thread dump parser.
type ParserOptions struct {
	// StrictSynchronizers validates the "Locked ownable synchronizers" section
	// that follows each stack trace instead of discarding it unchecked.
	StrictSynchronizers bool

	// MaxLineBytes limits the length of a single line read by Parse.
	MaxLineBytes int

	// Patterns overrides the header patterns. Zero value means DefaultPatterns.
	Patterns Patterns

	// Logger receives debug output. If nil, nothing is logged.
	Logger utils.Logger
}

// DefaultParserOptions returns default parser options.
func DefaultParserOptions() *ParserOptions {
	return &ParserOptions{
		StrictSynchronizers: false,
		MaxLineBytes:        DefaultMaxLineBytes,
		Patterns:            DefaultPatterns,
	}
}

// Parser implements parser.DumpParser for JVM thread dumps.
type Parser struct {
	opts    *ParserOptions
	headers HeaderParser
	log     utils.Logger
}

var _ parser.DumpParser = (*Parser)(nil)

// NewParser creates a new thread dump parser.
func NewParser(opts *ParserOptions) *Parser {
	if opts == nil {
		opts = DefaultParserOptions()
	}
	patterns := opts.Patterns
	if patterns.Header == nil || patterns.State == nil {
		patterns = DefaultPatterns
	}
	if opts.MaxLineBytes <= 0 {
		opts.MaxLineBytes = DefaultMaxLineBytes
	}
	return &Parser{
		opts:    opts,
		headers: NewHeaderParser(patterns),
		log:     utils.OrNull(opts.Logger),
	}
}

// SupportedFormats returns the formats supported by this parser.
func (p *Parser) SupportedFormats() []string {
	return []string{"jvm-thread-dump", "jstack"}
}

// Name returns the name of this parser.
func (p *Parser) Name() string {
	return "threaddump"
}

// Parse reads every line from reader and parses the resulting dump.
func (p *Parser) Parse(ctx context.Context, reader io.Reader) (*model.DumpDocument, error) {
	lines, err := p.readLines(ctx, reader)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "dump has no lines", parser.ErrEmptyInput)
	}
	return p.ParseLines(lines)
}

func (p *Parser) readLines(ctx context.Context, reader io.Reader) ([]string, error) {
	bufSize := initialScanBufBytes
	if bufSize > p.opts.MaxLineBytes {
		bufSize = p.opts.MaxLineBytes
	}

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, bufSize), p.opts.MaxLineBytes)

	var lines []string
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			err = fmt.Errorf("%w: line %d exceeds %d bytes", parser.ErrLineTooLong, len(lines)+1, p.opts.MaxLineBytes)
		}
		return nil, apperrors.Wrap(apperrors.CodeReadError, "failed to read dump", err)
	}
	return lines, nil
}

// ParseLines parses a dump given as an ordered list of lines.
//
// The first two lines are the document header. Every following block is a
// separator line, a thread header line, a state line, the stack frames up to
// the next blank line, and an optional synchronizer section. Threads with an
// empty stack trace are not returned. Blank lines at the end of the input are
// ignored.
func (p *Parser) ParseLines(lines []string) (*model.DumpDocument, error) {
	if len(lines) < headerLines {
		return nil, &TruncatedInputError{
			LineNumber: len(lines) + 1,
			Expected:   "dump header",
			LastLine:   lastLine(lines),
		}
	}

	doc := &model.DumpDocument{
		Header: model.DumpHeader{
			Timestamp:   lines[0],
			Description: lines[1],
		},
		Threads: make([]model.ThreadRecord, 0),
	}

	cur := &lineCursor{lines: lines, pos: headerLines}
	for !cur.done() {
		// The cursor rests on the separator that precedes each block.
		cur.advance()
		if cur.restBlank() {
			break
		}

		record, ok, err := p.readBlock(cur)
		if err != nil {
			return nil, err
		}
		if ok {
			doc.Threads = append(doc.Threads, record)
		}
	}

	return doc, nil
}

// readBlock reads one thread block starting at its header line. It leaves the
// cursor on the blank line that ends the block, or on the last input line.
func (p *Parser) readBlock(cur *lineCursor) (model.ThreadRecord, bool, error) {
	headerLine, headerNum, err := cur.next("thread header")
	if err != nil {
		return model.ThreadRecord{}, false, err
	}
	name, id, err := p.headers.ParseNameAndID(headerLine)
	if err != nil {
		return model.ThreadRecord{}, false, atLine(err, headerNum)
	}

	stateLine, stateNum, err := cur.next("thread state")
	if err != nil {
		return model.ThreadRecord{}, false, err
	}
	token, err := p.headers.ParseStateToken(stateLine)
	if err != nil {
		return model.ThreadRecord{}, false, atLine(err, stateNum)
	}
	state, ok := model.ParseThreadState(token)
	if !ok {
		return model.ThreadRecord{}, false, &UnknownStateError{LineNumber: stateNum, Line: stateLine, State: token}
	}

	var frames []string
	for {
		line, err := cur.peek("stack trace of " + id)
		if err != nil {
			return model.ThreadRecord{}, false, err
		}
		if isBlank(line) {
			break
		}
		frames = append(frames, trimIndent(line))
		cur.advance()
	}

	if err := p.skipSynchronizers(cur); err != nil {
		return model.ThreadRecord{}, false, err
	}

	if len(frames) == 0 {
		p.log.Debug("skipping thread %s (%s) at line %d: empty stack trace", id, name, headerNum)
		return model.ThreadRecord{}, false, nil
	}

	return model.ThreadRecord{
		Name:       name,
		ID:         id,
		State:      state,
		StackTrace: strings.Join(frames, "\n"),
	}, true, nil
}

// skipSynchronizers moves past the non-blank lines that follow the blank line
// ending a stack trace. Lock ownership is not modeled, so the lines are
// dropped; in strict mode they must form a well-formed synchronizer section.
func (p *Parser) skipSynchronizers(cur *lineCursor) error {
	first := true
	for cur.hasNext() {
		cur.advance()
		line, _ := cur.current()
		if isBlank(line) {
			return nil
		}
		if p.opts.StrictSynchronizers {
			if err := validateSynchronizerLine(line, first, cur.lineNumber()); err != nil {
				return err
			}
		}
		first = false
	}
	return nil
}

func validateSynchronizerLine(line string, first bool, lineNumber int) error {
	trimmed := strings.TrimSpace(line)
	if first {
		if trimmed != synchronizersTitle {
			return &FormatError{LineNumber: lineNumber, Line: line, Reason: "expected locked ownable synchronizers section"}
		}
		return nil
	}
	if !strings.HasPrefix(trimmed, synchronizerPrefix) {
		return &FormatError{LineNumber: lineNumber, Line: line, Reason: "malformed locked ownable synchronizer entry"}
	}
	return nil
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// trimIndent removes leading indentation from a stack frame line.
func trimIndent(line string) string {
	return strings.TrimLeft(line, " \t")
}

func lastLine(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}
