// Command filmeda runs the exploratory analyses over the award-nominated
// films dataset and writes one chart per section.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"
	"time"

	"filmeda/internal/config"
	"filmeda/internal/dataset"
	apperrors "filmeda/internal/errors"
	"filmeda/internal/files"
	"filmeda/internal/infrastructure"
	"filmeda/internal/operations"
)

// Exit codes
const (
	exitOK             = 0
	exitSetupFailed    = 1
	exitSectionsFailed = 2
)

// buildTime is set by the build helper
var buildTime = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// options holds the command line flags
type options struct {
	configFile string
	dataPath   string
	outDir     string
	sections   string
	format     string
	tables     bool
	list       bool
}

func parseFlags(args []string, stdout io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.StringVar(&opts.configFile, "config", "", "YAML config file (defaults to filmeda.yaml or configs/filmeda.yaml)")
	fs.StringVar(&opts.dataPath, "data", "", "dataset file, .csv or .xlsx")
	fs.StringVar(&opts.outDir, "out", "", "output directory for charts, tables and telemetry")
	fs.StringVar(&opts.sections, "sections", "all", "comma separated section IDs to run")
	fs.StringVar(&opts.format, "format", "", "chart format: png or svg")
	fs.BoolVar(&opts.tables, "tables", false, "also export each section's aggregate table as CSV")
	fs.BoolVar(&opts.list, "list", false, "print the section IDs and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

// loadConfig reads the config and applies flag overrides
func loadConfig(opts *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configFile != "" {
		if !config.FileExists(opts.configFile) {
			return nil, fmt.Errorf("config file %s not found", opts.configFile)
		}
		cfg, err = config.LoadFrom(opts.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.dataPath != "" {
		cfg.Paths.Dataset = opts.dataPath
	}
	if opts.outDir != "" {
		cfg.Paths.OutputDir = opts.outDir
	}
	if opts.format != "" {
		cfg.Render.Format = opts.format
	}
	if opts.tables {
		cfg.Export.Tables = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func run(args []string, stdout io.Writer) int {
	opts, err := parseFlags(args, stdout)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitSetupFailed
	}

	registry, err := operations.NewDefaultRegistry()
	if err != nil {
		fmt.Fprintf(stdout, "failed to register sections: %v\n", err)
		return exitSetupFailed
	}
	if opts.list {
		printSections(stdout, registry)
		return exitOK
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stdout, "configuration error: %v\n", err)
		return exitSetupFailed
	}

	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		fmt.Fprintf(stdout, "failed to resolve paths: %v\n", err)
		return exitSetupFailed
	}
	if err := paths.EnsureDirectories(); err != nil {
		fmt.Fprintf(stdout, "failed to create output directories: %v\n", err)
		return exitSetupFailed
	}

	if !filepath.IsAbs(cfg.Logging.FilePath) {
		cfg.Logging.FilePath = paths.GetLogPath(filepath.Base(cfg.Logging.FilePath))
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stdout, "failed to initialize logger: %v\n", err)
		return exitSetupFailed
	}
	defer infrastructure.CloseLogFile()
	logger.Info("Starting filmeda",
		slog.String("version", config.AppVersion),
		slog.String("build_time", buildTime),
		slog.String("sections", opts.sections))
	paths.LogPathResolution()

	otelCfg, err := infrastructure.NewOTelConfig(cfg.Telemetry, paths)
	if err != nil {
		logger.Error("Failed to configure telemetry", slog.String("error", err.Error()))
		return exitSetupFailed
	}
	providers, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		logger.Error("Failed to initialize telemetry", slog.String("error", err.Error()))
		return exitSetupFailed
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(ctx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	datasetPath, err := files.NewDiscovery(paths.WorkingDir).ResolveDataset(paths.DatasetFile)
	if err != nil {
		logger.Error("Dataset not found", slog.String("error", err.Error()))
		fmt.Fprintf(stdout, "dataset error: %v\n", err)
		return exitSetupFailed
	}
	paths.DatasetFile = datasetPath
	if err := paths.ValidateDataset(); err != nil {
		logger.Error("Dataset not found", slog.String("error", err.Error()))
		fmt.Fprintf(stdout, "dataset error: %v\n", err)
		return exitSetupFailed
	}
	table, err := dataset.Load(paths.DatasetFile)
	if err != nil {
		logger.Error("Failed to load dataset",
			slog.String("error", err.Error()),
			slog.String("error_code", string(apperrors.CodeOf(err))))
		fmt.Fprintf(stdout, "dataset error: %v\n", err)
		return exitSetupFailed
	}
	logger.Info("Dataset loaded",
		slog.String("path", paths.DatasetFile),
		slog.Int("rows", table.Len()),
		slog.Int("columns", len(table.Columns())))

	tracer, err := operations.NewSectionTracer(providers)
	if err != nil {
		logger.Error("Failed to create section tracer", slog.String("error", err.Error()))
		return exitSetupFailed
	}
	runner := operations.NewRunner(registry, operations.NewEnvironment(cfg, paths, table), tracer)
	runner.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := runner.Run(ctx, operations.ParseSectionList(opts.sections)...)
	if err != nil {
		logger.Error("Run could not start", slog.String("error", err.Error()))
		fmt.Fprintf(stdout, "run error: %v\n", err)
		return exitSetupFailed
	}

	manifest := operations.NewRunManifest(report, paths.DatasetFile, table.Len())
	if path, err := manifest.SaveToFile(paths.OutputDir); err != nil {
		logger.Warn("Failed to save manifest", slog.String("error", err.Error()))
	} else {
		logger.Info("Manifest saved", slog.String("path", path))
	}

	printSummary(stdout, report)
	if report.HasFailures() {
		return exitSectionsFailed
	}
	return exitOK
}

func printSections(w io.Writer, registry *operations.Registry) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, s := range registry.List() {
		fmt.Fprintf(tw, "%s\t%s\n", s.ID(), s.Name())
	}
	tw.Flush()
}

func printSummary(w io.Writer, report *operations.Report) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SECTION\tSTATUS\tDURATION\tARTIFACTS\tDETAIL")
	for _, s := range report.Sections {
		detail := s.Message
		if s.ErrorText != "" {
			detail = s.ErrorText
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			s.ID, s.Status, s.Duration().Round(time.Millisecond), s.ArtifactCount(), detail)
	}
	tw.Flush()
	fmt.Fprintf(w, "run %s: %d completed, %d failed, %d skipped in %s\n",
		report.RunID,
		report.Count(operations.SectionStatusCompleted),
		report.Count(operations.SectionStatusFailed),
		report.Count(operations.SectionStatusSkipped),
		report.Duration().Round(time.Millisecond))
}
