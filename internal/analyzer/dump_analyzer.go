package analyzer

import (
	"context"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jvm-dump-analyser/internal/grouping"
	"github.com/jvm-dump-analyser/internal/parser"
	"github.com/jvm-dump-analyser/internal/parser/threaddump"
	"github.com/jvm-dump-analyser/internal/statistics"
	"github.com/jvm-dump-analyser/internal/storage"
	"github.com/jvm-dump-analyser/pkg/compression"
	apperrors "github.com/jvm-dump-analyser/pkg/errors"
	"github.com/jvm-dump-analyser/pkg/model"
	"github.com/jvm-dump-analyser/pkg/telemetry"
	"github.com/jvm-dump-analyser/pkg/utils"
)

// DumpAnalyzerConfig holds the collaborators of a DumpAnalyzer.
type DumpAnalyzerConfig struct {
	// Storage opens dump files. Required.
	Storage storage.Storage

	// Parser parses dumps. Defaults to a lenient threaddump parser.
	Parser parser.DumpParser

	// Grouper groups parsed threads. Defaults to the standard normalizer.
	Grouper *grouping.Grouper

	// TopFrames is the number of top-of-stack frames to report. Zero means all.
	TopFrames int

	// Tracer defaults to the global analyser tracer.
	Tracer trace.Tracer

	// Logger is used for debug logging. If nil, logs are suppressed.
	Logger utils.Logger

	// Clock drives the phase timer. Defaults to the real clock.
	Clock utils.Clock
}

// DumpAnalyzer analyzes JVM thread dumps.
type DumpAnalyzer struct {
	storage   storage.Storage
	parser    parser.DumpParser
	grouper   *grouping.Grouper
	states    *statistics.StateStatsCalculator
	topFrames *statistics.TopFramesCalculator
	tracer    trace.Tracer
	log       utils.Logger
	clock     utils.Clock
}

var _ Analyzer = (*DumpAnalyzer)(nil)

// NewDumpAnalyzer creates a DumpAnalyzer.
func NewDumpAnalyzer(cfg DumpAnalyzerConfig) (*DumpAnalyzer, error) {
	if cfg.Storage == nil {
		return nil, ErrNoStorage
	}

	log := utils.OrNull(cfg.Logger)
	a := &DumpAnalyzer{
		storage:   cfg.Storage,
		parser:    cfg.Parser,
		grouper:   cfg.Grouper,
		states:    statistics.NewStateStatsCalculator(),
		topFrames: statistics.NewTopFramesCalculator(statistics.WithTopN(cfg.TopFrames)),
		tracer:    cfg.Tracer,
		log:       log,
		clock:     cfg.Clock,
	}
	if a.parser == nil {
		opts := threaddump.DefaultParserOptions()
		opts.Logger = cfg.Logger
		a.parser = threaddump.NewParser(opts)
	}
	if a.grouper == nil {
		a.grouper = grouping.NewGrouper(grouping.WithLogger(cfg.Logger))
	}
	if a.tracer == nil {
		a.tracer = telemetry.Tracer()
	}
	if a.clock == nil {
		a.clock = utils.NewRealClock()
	}
	return a, nil
}

// Name returns the name of this analyzer.
func (a *DumpAnalyzer) Name() string {
	return "jvm-thread-dump"
}

// Analyze opens req.Source from storage and analyzes it.
func (a *DumpAnalyzer) Analyze(ctx context.Context, req *AnalysisRequest) (*AnalysisResult, error) {
	if req == nil || req.Source == "" {
		return nil, ErrNoSource
	}

	ctx, span := a.tracer.Start(ctx, "analyzer.Analyze", trace.WithAttributes(
		attribute.String("dump.source", req.Source),
	))
	defer span.End()

	openCtx, openSpan := a.tracer.Start(ctx, "analyzer.Open")
	a.log.Debug("opening %s", a.storage.GetURL(req.Source))
	rc, err := a.storage.Open(openCtx, req.Source)
	endSpan(openSpan, err)
	if err != nil {
		return nil, fail(span, err)
	}
	defer rc.Close()

	result, err := a.run(ctx, req, rc)
	if err != nil {
		return nil, fail(span, err)
	}
	span.SetAttributes(
		attribute.Int("dump.threads", result.Document.ThreadCount()),
		attribute.Int("dump.groups", result.Groups.Len()),
		attribute.Int("dump.emitted", len(result.Emitted)),
	)
	return result, nil
}

// AnalyzeFromReader analyzes the dump read from reader.
func (a *DumpAnalyzer) AnalyzeFromReader(ctx context.Context, req *AnalysisRequest, reader io.Reader) (*AnalysisResult, error) {
	if req == nil {
		req = &AnalysisRequest{}
	}

	ctx, span := a.tracer.Start(ctx, "analyzer.AnalyzeFromReader", trace.WithAttributes(
		attribute.String("dump.source", req.Source),
	))
	defer span.End()

	result, err := a.run(ctx, req, reader)
	if err != nil {
		return nil, fail(span, err)
	}
	return result, nil
}

func (a *DumpAnalyzer) run(ctx context.Context, req *AnalysisRequest, reader io.Reader) (*AnalysisResult, error) {
	timer := utils.NewTimer("Analysis", utils.WithLogger(a.log), utils.WithClock(a.clock))

	rd, ctype, err := compression.NewReader(reader)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeReadError, "failed to decompress dump", err)
	}
	defer rd.Close()
	if ctype != compression.TypeNone {
		a.log.Debug("decompressing %s input", ctype)
	}

	var doc *model.DumpDocument
	_, err = timer.TimeFuncWithError("Parse", func() error {
		pctx, pspan := a.tracer.Start(ctx, "analyzer.Parse", trace.WithAttributes(
			attribute.String("parser.name", a.parser.Name()),
		))
		var perr error
		doc, perr = a.parser.Parse(pctx, rd)
		endSpan(pspan, perr)
		return perr
	})
	if err != nil {
		return nil, err
	}
	a.log.Debug("parsed %d threads", doc.ThreadCount())

	result := &AnalysisResult{Document: doc}

	pt := timer.Start("Group")
	_, gspan := a.tracer.Start(ctx, "analyzer.Group")
	result.Groups = a.grouper.Group(doc.Threads)
	gspan.SetAttributes(attribute.Int("dump.groups", result.Groups.Len()))
	gspan.End()
	pt.Stop()

	pt = timer.Start("Filter")
	_, fspan := a.tracer.Start(ctx, "analyzer.Filter", trace.WithAttributes(
		attribute.String("filter", req.Filter.String()),
	))
	result.Emitted = req.Filter.Apply(result.Groups)
	fspan.End()
	pt.Stop()
	a.log.Debug("filter %s kept %d of %d groups", req.Filter, len(result.Emitted), result.Groups.Len())

	pt = timer.Start("Statistics")
	result.States = a.states.Calculate(doc)
	result.TopFrames = a.topFrames.Calculate(doc)
	pt.Stop()

	timer.PrintSummary()
	result.Phases = timer.GetPhases()
	return result, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
