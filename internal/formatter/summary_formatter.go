package formatter

import (
	"github.com/jvm-dump-analyser/internal/statistics"
	"github.com/jvm-dump-analyser/pkg/utils"
)

// Summary describes one analysis run.
type Summary struct {
	Source    string
	Threads   int
	Groups    int
	Emitted   int
	States    *statistics.StateStats
	TopFrames []statistics.FrameEntry
}

// SummaryFormatter logs a run summary.
type SummaryFormatter struct{}

// Format writes s to log at info level. Top frames are logged at debug level.
func (f *SummaryFormatter) Format(s Summary, log utils.Logger) {
	log.Info("=== Analysis Summary ===")
	if s.Source != "" {
		log.Info("Source:         %s", s.Source)
	}
	log.Info("Threads:        %d", s.Threads)
	log.Info("Groups:         %d", s.Groups)
	log.Info("Emitted groups: %d", s.Emitted)

	if s.States != nil {
		for _, e := range s.States.States {
			log.Info("  %-14s %5d  %6.2f%%", e.State, e.Threads, e.Percentage)
		}
	}

	if len(s.TopFrames) > 0 {
		log.Debug("=== Top Frames ===")
		for i, fr := range s.TopFrames {
			log.Debug("  %2d. %5d  %6.2f%%  %s", i+1, fr.Threads, fr.Percentage, truncateString(fr.Frame, 100))
		}
	}
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
