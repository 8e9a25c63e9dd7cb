package testutil

import (
	"bufio"
	"fmt"
	"strings"
)

// DumpBuilder assembles thread dump text for tests.
type DumpBuilder struct {
	timestamp   string
	description string
	blocks      [][]string
}

// NewDumpBuilder creates a builder with a default two-line header.
func NewDumpBuilder() *DumpBuilder {
	return &DumpBuilder{
		timestamp:   "2024-01-01 00:00:00",
		description: "Full thread dump OpenJDK 64-Bit Server VM (17.0.9+9 mixed mode):",
	}
}

// Header replaces the two header lines.
func (b *DumpBuilder) Header(timestamp, description string) *DumpBuilder {
	b.timestamp = timestamp
	b.description = description
	return b
}

// Thread appends a well-formed block with a "- None" synchronizer section.
// Frames are written with a leading tab.
func (b *DumpBuilder) Thread(name, id, state string, frames ...string) *DumpBuilder {
	block := []string{
		"",
		fmt.Sprintf(`"%s" - Thread %s`, name, id),
		"   java.lang.Thread.State: " + state,
	}
	for _, f := range frames {
		block = append(block, "\t"+f)
	}
	block = append(block, "", "   Locked ownable synchronizers:", "\t- None")
	b.blocks = append(b.blocks, block)
	return b
}

// Raw appends lines verbatim, including the leading separator if one is wanted.
func (b *DumpBuilder) Raw(lines ...string) *DumpBuilder {
	b.blocks = append(b.blocks, append([]string(nil), lines...))
	return b
}

// Lines returns the dump as lines, ending with a blank line.
func (b *DumpBuilder) Lines() []string {
	lines := []string{b.timestamp, b.description}
	for _, block := range b.blocks {
		lines = append(lines, block...)
	}
	return append(lines, "")
}

// String returns the dump as newline-terminated text.
func (b *DumpBuilder) String() string {
	return strings.Join(b.Lines(), "\n") + "\n"
}

// SplitLines splits text into lines the way a line scanner does: CR/LF
// endings are accepted and a final newline does not produce an empty line.
func SplitLines(text string) []string {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}
