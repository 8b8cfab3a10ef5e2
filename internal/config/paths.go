package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the application paths
// This is the single source of truth for every file the run reads or writes
type Paths struct {
	WorkingDir   string
	DatasetFile  string
	OutputDir    string
	ChartsDir    string
	TablesDir    string
	TelemetryDir string
	LogsDir      string
}

// NewPaths resolves the configured paths against the working directory
func NewPaths(cfg PathsConfig) (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(wd, p)
	}

	outputDir := resolve(cfg.OutputDir)
	logsDir := resolve(cfg.LogsDir)
	if logsDir == "" {
		logsDir = filepath.Join(wd, DefaultLogsDir)
	}

	return &Paths{
		WorkingDir:   wd,
		DatasetFile:  resolve(cfg.Dataset),
		OutputDir:    outputDir,
		ChartsDir:    filepath.Join(outputDir, ChartsSubdir),
		TablesDir:    filepath.Join(outputDir, TablesSubdir),
		TelemetryDir: filepath.Join(outputDir, TelemetrySubdir),
		LogsDir:      logsDir,
	}, nil
}

// EnsureDirectories creates all output directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.OutputDir,
		p.ChartsDir,
		p.TablesDir,
		p.TelemetryDir,
		p.LogsDir,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		slog.Debug("Ensured directory exists", slog.String("directory", dir))
	}

	return nil
}

// GetChartPath returns the path for a chart artifact
func (p *Paths) GetChartPath(filename string) string {
	return filepath.Join(p.ChartsDir, filename)
}

// GetTablePath returns the path for an exported aggregate table
func (p *Paths) GetTablePath(filename string) string {
	return filepath.Join(p.TablesDir, filename)
}

// GetTelemetryPath returns the path for a trace or metrics file
func (p *Paths) GetTelemetryPath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(p.TelemetryDir, filename)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// ValidateDataset checks the input file is present
func (p *Paths) ValidateDataset() error {
	info, err := os.Stat(p.DatasetFile)
	if err != nil {
		return fmt.Errorf("dataset %s: %w", p.DatasetFile, err)
	}
	if info.IsDir() {
		return fmt.Errorf("dataset %s is a directory", p.DatasetFile)
	}
	return nil
}

// LogPathResolution logs the resolved layout for debugging
func (p *Paths) LogPathResolution() {
	slog.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("working", p.WorkingDir),
			slog.String("output", p.OutputDir),
			slog.String("charts", p.ChartsDir),
			slog.String("tables", p.TablesDir),
			slog.String("telemetry", p.TelemetryDir),
			slog.String("logs", p.LogsDir),
		),
		slog.Group("input",
			slog.String("dataset", p.DatasetFile),
			slog.Bool("exists", FileExists(p.DatasetFile)),
		))
}
