// Package statistics summarizes parsed thread dumps.
package statistics

import (
	"github.com/jvm-dump-analyser/pkg/model"
)

// StateEntry is the thread count for one state.
type StateEntry struct {
	State      model.ThreadState `json:"state"`
	Threads    int               `json:"threads"`
	Percentage float64           `json:"percentage"`
}

// StateStats holds per-state thread counts.
type StateStats struct {
	// States lists every known state in declaration order, zero counts included.
	States       []StateEntry
	TotalThreads int
}

// Count returns the thread count for s.
func (s *StateStats) Count(state model.ThreadState) int {
	for _, e := range s.States {
		if e.State == state {
			return e.Threads
		}
	}
	return 0
}

// StateStatsCalculator counts threads by state.
type StateStatsCalculator struct{}

// NewStateStatsCalculator creates a new StateStatsCalculator.
func NewStateStatsCalculator() *StateStatsCalculator {
	return &StateStatsCalculator{}
}

// Calculate counts the threads of doc by state.
func (c *StateStatsCalculator) Calculate(doc *model.DumpDocument) *StateStats {
	counts := make(map[model.ThreadState]int)
	total := doc.ThreadCount()
	if doc != nil {
		for _, t := range doc.Threads {
			counts[t.State]++
		}
	}

	result := &StateStats{TotalThreads: total}
	for _, st := range model.AllThreadStates() {
		pct := 0.0
		if total > 0 {
			pct = float64(counts[st]) / float64(total) * 100
		}
		result.States = append(result.States, StateEntry{
			State:      st,
			Threads:    counts[st],
			Percentage: pct,
		})
	}
	return result
}
