package operations

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"filmeda/internal/config"
	"filmeda/internal/dataset"
	"filmeda/internal/exporter"
	"filmeda/internal/render"
)

// ArtifactStore creates the files a section writes
type ArtifactStore interface {
	// Create opens name for writing and returns where it will live
	Create(name string) (io.WriteCloser, string, error)
	// Remove discards a partially written artifact
	Remove(location string) error
}

// TableExporter writes a section's aggregate table next to its chart
type TableExporter interface {
	Write(name string, headers []string, rows [][]string) (string, error)
}

// DirStore writes artifacts into a directory
type DirStore struct {
	dir string
}

// NewDirStore creates a store rooted at dir
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// Create implements ArtifactStore
func (s *DirStore) Create(name string) (io.WriteCloser, string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, "", fmt.Errorf("failed to create artifact directory: %w", err)
	}
	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create artifact %s: %w", name, err)
	}
	return f, path, nil
}

// Remove implements ArtifactStore
func (s *DirStore) Remove(location string) error {
	return os.Remove(location)
}

// Environment is everything a section reads. The table is shared by all
// sections and never modified.
type Environment struct {
	Table     *dataset.Table
	Analysis  config.AnalysisConfig
	Render    render.Options
	Captions  bool
	Artifacts ArtifactStore
	// Tables is nil when aggregate export is disabled
	Tables TableExporter
}

// NewEnvironment wires the configured render options, the charts directory
// and, when enabled, the table exporter
func NewEnvironment(cfg *config.Config, paths *config.Paths, table *dataset.Table) *Environment {
	env := &Environment{
		Table:    table,
		Analysis: cfg.Analysis,
		Render: render.Options{
			Format: cfg.Render.Format,
			Width:  cfg.Render.Width,
			Height: cfg.Render.Height,
		},
		Captions:  cfg.Render.Caption,
		Artifacts: NewDirStore(paths.ChartsDir),
	}
	if cfg.Export.Tables {
		env.Tables = exporter.NewTableWriter(exporter.NewCSVWriter(paths))
	}
	return env
}

// validate checks the environment can serve a run
func (e *Environment) validate() error {
	if e == nil {
		return NewValidationError("", "environment is nil")
	}
	if e.Table == nil {
		return NewValidationError("", "environment has no film table")
	}
	if e.Artifacts == nil {
		return NewValidationError("", "environment has no artifact store")
	}
	return nil
}

// chartOptions returns the render options for one chart
func (e *Environment) chartOptions(title, caption string) render.Options {
	opts := e.Render
	opts.Title = title
	if e.Captions {
		opts.Caption = caption
	} else {
		opts.Caption = ""
	}
	return opts
}

// writeChart renders into a new artifact named after the section. A failed
// render leaves no file behind.
func (e *Environment) writeChart(sectionID string, opts render.Options, draw func(io.Writer) error) (string, error) {
	name := sectionID + "." + opts.Extension()
	w, location, err := e.Artifacts.Create(name)
	if err != nil {
		return "", err
	}

	drawErr := draw(w)
	closeErr := w.Close()
	if drawErr == nil && closeErr != nil {
		drawErr = fmt.Errorf("failed to close artifact %s: %w", name, closeErr)
	}
	if drawErr != nil {
		_ = e.Artifacts.Remove(location)
		return "", drawErr
	}
	return location, nil
}

// writeTable exports an aggregate table when export is enabled
func (e *Environment) writeTable(outcome *Outcome, name string, headers []string, rows [][]string) error {
	if e.Tables == nil {
		return nil
	}
	path, err := e.Tables.Write(name, headers, rows)
	if err != nil {
		return err
	}
	outcome.Tables = append(outcome.Tables, path)
	return nil
}
