// Package analyzer runs the dump analysis pipeline: open the dump, parse it,
// group threads by normalized stack trace and apply the report filter.
package analyzer

import (
	"context"
	"io"

	"github.com/jvm-dump-analyser/internal/filter"
	"github.com/jvm-dump-analyser/internal/grouping"
	"github.com/jvm-dump-analyser/internal/statistics"
	"github.com/jvm-dump-analyser/pkg/model"
	"github.com/jvm-dump-analyser/pkg/utils"
)

// Analyzer is the interface for thread dump analyzers.
type Analyzer interface {
	// Analyze opens req.Source and analyzes it.
	Analyze(ctx context.Context, req *AnalysisRequest) (*AnalysisResult, error)

	// AnalyzeFromReader analyzes a dump read from reader. req.Source is only
	// used for logging.
	AnalyzeFromReader(ctx context.Context, req *AnalysisRequest, reader io.Reader) (*AnalysisResult, error)

	// Name returns the name of this analyzer.
	Name() string
}

// AnalysisRequest describes one run.
type AnalysisRequest struct {
	// Source is the storage key of the dump file.
	Source string
	// Filter selects the groups to emit.
	Filter filter.GroupFilter
}

// AnalysisResult is the outcome of a successful run. A failed run returns no
// result at all.
type AnalysisResult struct {
	Document *model.DumpDocument
	Groups   *grouping.GroupIndex
	// Emitted holds the groups passing the filter, in first-seen order.
	Emitted   []*grouping.Group
	States    *statistics.StateStats
	TopFrames []statistics.FrameEntry
	Phases    []utils.Phase
}
