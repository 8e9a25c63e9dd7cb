package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jvm-dump-analyser/internal/analyzer"
	"github.com/jvm-dump-analyser/internal/filter"
	"github.com/jvm-dump-analyser/internal/formatter"
	"github.com/jvm-dump-analyser/internal/parser/threaddump"
	"github.com/jvm-dump-analyser/internal/storage"
	"github.com/jvm-dump-analyser/pkg/config"
	"github.com/jvm-dump-analyser/pkg/telemetry"
	"github.com/jvm-dump-analyser/pkg/utils"
)

// stdinSource reads the dump from standard input instead of storage.
const stdinSource = "-"

type rootOptions struct {
	file       string
	maxSize    int
	minSize    int
	keywords   string
	verbose    bool
	configPath string
	color      bool
	strict     bool
}

// NewRootCmd builds the root command.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   BinName() + " -f <dump file>",
		Short: "Group JVM thread dump threads by stack trace",
		Long: `Parses a JVM thread dump and groups threads whose stack traces are
identical once lock and monitor ids are masked. Each group is printed with
its size, the normalized stack trace and its threads.

Size and keyword filters are combined: a group is printed only if it passes
all of them. Keywords match the normalized stack trace, case-sensitively.`,
		Example: `  # Print every group
  ` + BinName() + ` -f ./threads.txt

  # Groups of at least 5 threads blocked in a JDBC driver or a socket read
  ` + BinName() + ` -f ./threads.txt -g 5 -t "com.mysql.cj,SocketInputStream.read"

  # Read a dump saved from VisualVM or JConsole through stdin
  cat ./visualvm-threaddump.tdump | ` + BinName() + ` -f -`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.file, "file", "f", "", "Thread dump file, or - for stdin (required)")
	flags.IntVarP(&opts.maxSize, "max-size", "l", 0, "Print only groups with at most this many threads")
	flags.IntVarP(&opts.minSize, "min-size", "g", 0, "Print only groups with at least this many threads")
	flags.StringVarP(&opts.keywords, "keywords", "t", "", "Comma-separated substrings; print only groups whose stack trace contains one")
	flags.BoolVar(&opts.color, "color", false, "Highlight group banners")
	flags.BoolVar(&opts.strict, "strict", false, "Reject malformed \"Locked ownable synchronizers\" sections")
	_ = cmd.MarkFlagRequired("file")

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default: ./config.yaml, ./configs/config.yaml or /etc/jvm-dump-analyser/config.yaml)")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// BinName returns the base name of the current executable
func BinName() string {
	return filepath.Base(os.Args[0])
}

func runAnalyze(cmd *cobra.Command, opts *rootOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, opts, cfg)

	logger := utils.NewLogger(utils.ParseLogLevel(cfg.Log.Level), cmd.ErrOrStderr(), cfg.Log.Format)

	groupFilter, err := buildFilter(cmd, opts)
	if err != nil {
		return err
	}

	registry := formatter.NewRegistry(cfg.Report.Color)
	if !registry.Has(cfg.Report.Format) {
		return fmt.Errorf("unsupported report format %q (valid: %v)", cfg.Report.Format, registry.Names())
	}

	telCfg := cfg.Telemetry
	telCfg.ApplyEnv()
	shutdown, err := telemetry.Init(ctx, &telCfg)
	if err != nil {
		logger.Warn("Failed to initialize telemetry: %v", err)
	} else if telCfg.Enabled {
		logger.Debug("Tracing to %s over %s, sampler %s", telCfg.Endpoint, telCfg.Protocol, telCfg.SamplerName())
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("Failed to shut down telemetry: %v", err)
		}
	}()

	store, err := storage.NewStorage(&cfg.Storage)
	if err != nil {
		return err
	}

	parserOpts := threaddump.DefaultParserOptions()
	parserOpts.StrictSynchronizers = cfg.Parser.StrictSynchronizers
	parserOpts.MaxLineBytes = cfg.Parser.MaxLineBytes
	parserOpts.Logger = logger

	a, err := analyzer.NewDumpAnalyzer(analyzer.DumpAnalyzerConfig{
		Storage:   store,
		Parser:    threaddump.NewParser(parserOpts),
		TopFrames: cfg.Report.TopFrames,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	req := &analyzer.AnalysisRequest{Source: opts.file, Filter: groupFilter}
	logger.Debug("analyzing %s (filter: %s)", opts.file, groupFilter)

	var result *analyzer.AnalysisResult
	if opts.file == stdinSource {
		req.Source = "stdin"
		result, err = a.AnalyzeFromReader(ctx, req, cmd.InOrStdin())
	} else {
		result, err = a.Analyze(ctx, req)
	}
	if err != nil {
		return err
	}

	if err := registry.Get(cfg.Report.Format).Write(cmd.OutOrStdout(), result.Emitted); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cfg.Report.Summary {
		(&formatter.SummaryFormatter{}).Format(formatter.Summary{
			Source:    req.Source,
			Threads:   result.Document.ThreadCount(),
			Groups:    result.Groups.Len(),
			Emitted:   len(result.Emitted),
			States:    result.States,
			TopFrames: result.TopFrames,
		}, logger)
	}
	return nil
}

// applyFlagOverrides lets explicitly set flags win over the config file.
func applyFlagOverrides(cmd *cobra.Command, opts *rootOptions, cfg *config.Config) {
	if opts.verbose {
		cfg.Log.Level = utils.LevelDebug.String()
	}
	if cmd.Flags().Changed("color") {
		cfg.Report.Color = opts.color
	}
	if cmd.Flags().Changed("strict") {
		cfg.Parser.StrictSynchronizers = opts.strict
	}
}

func buildFilter(cmd *cobra.Command, opts *rootOptions) (filter.GroupFilter, error) {
	var f filter.GroupFilter
	if cmd.Flags().Changed("max-size") {
		if opts.maxSize < 0 {
			return f, fmt.Errorf("--max-size must not be negative, got %d", opts.maxSize)
		}
		f.MaxSize = filter.Int(opts.maxSize)
	}
	if cmd.Flags().Changed("min-size") {
		if opts.minSize < 0 {
			return f, fmt.Errorf("--min-size must not be negative, got %d", opts.minSize)
		}
		f.MinSize = filter.Int(opts.minSize)
	}
	f.Keywords = filter.ParseKeywords(opts.keywords)
	return f, nil
}
