package statistics

import (
	"sort"
	"strings"

	"github.com/jvm-dump-analyser/pkg/model"
)

// TopFramesCalculator finds the frames threads are most often parked in.
type TopFramesCalculator struct {
	topN int
}

// TopFramesOption configures the TopFramesCalculator.
type TopFramesOption func(*TopFramesCalculator)

// WithTopN sets the number of frames to return. Zero means no limit.
func WithTopN(n int) TopFramesOption {
	return func(c *TopFramesCalculator) {
		c.topN = n
	}
}

// NewTopFramesCalculator creates a new TopFramesCalculator.
func NewTopFramesCalculator(opts ...TopFramesOption) *TopFramesCalculator {
	c := &TopFramesCalculator{
		topN: 10,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FrameEntry is a top-of-stack frame and how many threads sit in it.
type FrameEntry struct {
	Frame      string  `json:"frame"`
	Threads    int     `json:"threads"`
	Percentage float64 `json:"percentage"`
}

// Calculate counts the first stack line of every thread.
// Ties are broken by frame text so the result is stable.
func (c *TopFramesCalculator) Calculate(doc *model.DumpDocument) []FrameEntry {
	total := doc.ThreadCount()
	if total == 0 {
		return []FrameEntry{}
	}

	counts := make(map[string]int)
	for _, t := range doc.Threads {
		counts[topFrame(t.StackTrace)]++
	}

	entries := make([]FrameEntry, 0, len(counts))
	for frame, n := range counts {
		entries = append(entries, FrameEntry{
			Frame:      frame,
			Threads:    n,
			Percentage: float64(n) / float64(total) * 100,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Threads != entries[j].Threads {
			return entries[i].Threads > entries[j].Threads
		}
		return entries[i].Frame < entries[j].Frame
	})

	if c.topN > 0 && len(entries) > c.topN {
		entries = entries[:c.topN]
	}
	return entries
}

func topFrame(stack string) string {
	first, _, _ := strings.Cut(stack, "\n")
	return strings.TrimSpace(first)
}
