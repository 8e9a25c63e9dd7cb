package formatter

import (
	"bufio"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/jvm-dump-analyser/internal/grouping"
)

// FormatText is the name of the plain text report.
const FormatText = "text"

var bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

// TextFormatter prints each group as a banner with its size, the normalized
// stack trace, a blank line, one line per thread and a trailing blank line.
type TextFormatter struct {
	// Color styles the banner line. The rest of the block is always plain.
	Color bool
}

// Name returns "text".
func (f *TextFormatter) Name() string {
	return FormatText
}

// Write renders groups to w.
func (f *TextFormatter) Write(w io.Writer, groups []*grouping.Group) error {
	bw := bufio.NewWriter(w)
	for _, g := range groups {
		fmt.Fprintln(bw, f.banner(g.Size()))
		fmt.Fprintln(bw, g.Key)
		fmt.Fprintln(bw)
		for _, m := range g.Members() {
			fmt.Fprintln(bw, m.String())
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

func (f *TextFormatter) banner(n int) string {
	line := fmt.Sprintf("================= Total threads : %d =================", n)
	if f.Color {
		return bannerStyle.Render(line)
	}
	return line
}
