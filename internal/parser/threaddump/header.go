package threaddump

import (
	"regexp"
)

// Patterns holds the compiled expressions used to read thread headers.
// A Patterns value is immutable and safe to share between goroutines.
type Patterns struct {
	// Header matches `"<name>" - Thread t@<token>` and captures name and id.
	Header *regexp.Regexp
	// State matches `java.lang.Thread.State: <STATE>` and captures the token.
	State *regexp.Regexp
}

// DefaultPatterns are the patterns for the `"name" - Thread t@id` dump layout.
var DefaultPatterns = Patterns{
	Header: regexp.MustCompile(`"([a-zA-Z0-9_\-.() \[\]]+)" - Thread (t@[a-zA-Z0-9_-]+)`),
	State:  regexp.MustCompile(`java\.lang\.Thread\.State: ([_A-Z]+)`),
}

// HeaderParser extracts identity and state from the two header lines of a
// thread block. It keeps no state between calls.
type HeaderParser struct {
	patterns Patterns
}

// NewHeaderParser creates a HeaderParser using the given patterns.
func NewHeaderParser(patterns Patterns) HeaderParser {
	return HeaderParser{patterns: patterns}
}

// ParseNameAndID returns the thread name and id found in line.
func (p HeaderParser) ParseNameAndID(line string) (name, id string, err error) {
	m := p.patterns.Header.FindStringSubmatchIndex(line)
	if m == nil {
		return "", "", &FormatError{Line: line, Reason: "unknown thread header format"}
	}
	if len(m) < 6 || m[2] < 0 || m[4] < 0 {
		return "", "", &FormatError{Line: line, Reason: "thread header is missing name or id"}
	}
	return line[m[2]:m[3]], line[m[4]:m[5]], nil
}

// ParseStateToken returns the raw state token found in line. The token is not
// checked against the known thread states.
func (p HeaderParser) ParseStateToken(line string) (string, error) {
	m := p.patterns.State.FindStringSubmatchIndex(line)
	if m == nil {
		return "", &FormatError{Line: line, Reason: "unknown thread state format"}
	}
	if len(m) < 4 || m[2] < 0 {
		return "", &FormatError{Line: line, Reason: "thread state line is missing the state"}
	}
	return line[m[2]:m[3]], nil
}
