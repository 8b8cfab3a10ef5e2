package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"filmeda/internal/config"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths *config.Paths
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(paths *config.Paths) *CSVWriter {
	return &CSVWriter{paths: paths}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file and returns the resolved path
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) (string, error) {
	fullPath := w.resolvePath(filePath)

	slog.Debug("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return "", fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return "", fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return fullPath, file.Close()
}

// resolvePath places relative names in the tables directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.paths == nil {
		return filePath
	}
	return w.paths.GetTablePath(filePath)
}

// TableWriter exports section aggregate tables
type TableWriter struct {
	csv *CSVWriter
}

// NewTableWriter creates a table writer on top of a CSV writer
func NewTableWriter(w *CSVWriter) *TableWriter {
	return &TableWriter{csv: w}
}

// Write stores rows as <name>.csv and returns the file path
func (t *TableWriter) Write(name string, headers []string, rows [][]string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("table name cannot be empty")
	}
	for i, row := range rows {
		if len(row) != len(headers) {
			return "", fmt.Errorf("row %d has %d fields, want %d", i, len(row), len(headers))
		}
	}
	if !strings.HasSuffix(name, ".csv") {
		name += ".csv"
	}

	path, err := t.csv.WriteCSV(name, WriteOptions{
		Headers:   headers,
		Records:   rows,
		BOMPrefix: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to export table %s: %w", name, err)
	}

	slog.Info("Table exported",
		slog.String("table", name),
		slog.String("path", path),
		slog.Int("rows", len(rows)))
	return path, nil
}
