package threaddump

// lineCursor walks a line slice and turns reads past the end into
// TruncatedInputError instead of index faults.
type lineCursor struct {
	lines []string
	pos   int
}

func (c *lineCursor) done() bool {
	return c.pos >= len(c.lines)
}

func (c *lineCursor) hasNext() bool {
	return c.pos+1 < len(c.lines)
}

// lineNumber returns the 1-based number of the current line.
func (c *lineCursor) lineNumber() int {
	return c.pos + 1
}

// restBlank reports whether every remaining line, including the current one,
// is blank. It is true at the end of input.
func (c *lineCursor) restBlank() bool {
	for _, line := range c.lines[min(c.pos, len(c.lines)):] {
		if !isBlank(line) {
			return false
		}
	}
	return true
}

func (c *lineCursor) advance() {
	c.pos++
}

func (c *lineCursor) current() (string, bool) {
	if c.done() {
		return "", false
	}
	return c.lines[c.pos], true
}

// peek returns the current line without consuming it.
func (c *lineCursor) peek(expected string) (string, error) {
	line, ok := c.current()
	if !ok {
		return "", c.truncated(expected)
	}
	return line, nil
}

// next consumes the current line and returns it with its line number.
func (c *lineCursor) next(expected string) (string, int, error) {
	line, err := c.peek(expected)
	if err != nil {
		return "", 0, err
	}
	n := c.lineNumber()
	c.advance()
	return line, n, nil
}

func (c *lineCursor) truncated(expected string) *TruncatedInputError {
	return &TruncatedInputError{
		LineNumber: c.lineNumber(),
		Expected:   expected,
		LastLine:   lastLine(c.lines),
	}
}
