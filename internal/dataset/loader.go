package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "filmeda/internal/errors"
)

// Load reads the dataset file, choosing the reader from the file extension.
func Load(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSVFile(path)
	case ".xlsx":
		return LoadXLSX(path)
	default:
		return nil, apperrors.LoadFailed(path, fmt.Errorf("unsupported file extension %q", filepath.Ext(path)))
	}
}

// LoadCSVFile opens path and reads it with LoadCSV.
func LoadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.LoadFailed(path, err)
	}
	defer f.Close()

	t, err := LoadCSV(f)
	if err != nil {
		return nil, apperrors.LoadFailed(path, err)
	}
	slog.Info("Dataset loaded",
		slog.String("path", path),
		slog.String("format", "csv"),
		slog.Int("rows", t.Len()),
		slog.Int("columns", len(t.Columns())))
	return t, nil
}

// LoadCSV reads a CSV stream whose first record is the header.
func LoadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, apperrors.InvalidInput("file is empty")
	}
	return fromRecords(records[0], records[1:])
}

// LoadXLSX reads the first sheet whose header row contains a Title column.
func LoadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.LoadFailed(path, fmt.Errorf("failed to open file: %w", err))
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			slog.Warn("Skipping unreadable sheet", slog.String("sheet", sheet), slog.String("error", err.Error()))
			continue
		}
		header := -1
		for i, row := range rows {
			if indexOf(row, ColTitle) >= 0 {
				header = i
				break
			}
		}
		if header < 0 {
			continue
		}

		t, err := fromRecords(rows[header], rows[header+1:])
		if err != nil {
			return nil, apperrors.LoadFailed(path, err).WithDetail("sheet", sheet)
		}
		slog.Info("Dataset loaded",
			slog.String("path", path),
			slog.String("format", "xlsx"),
			slog.String("sheet", sheet),
			slog.Int("rows", t.Len()),
			slog.Int("columns", len(t.Columns())))
		return t, nil
	}
	return nil, apperrors.LoadFailed(path, apperrors.MissingColumn(ColTitle))
}

// fromRecords maps a header row and data rows to a Table. Short rows are
// padded with missing values; blank and "Unnamed:" headers are index
// columns and are skipped.
func fromRecords(header []string, rows [][]string) (*Table, error) {
	names := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	titleIdx := -1
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if name == "" || strings.HasPrefix(name, "Unnamed:") {
			continue
		}
		if seen[name] {
			return nil, apperrors.InvalidInput(fmt.Sprintf("duplicate column %q", name))
		}
		seen[name] = true
		names[i] = name
		if name == ColTitle {
			titleIdx = i
		}
	}
	if titleIdx < 0 {
		return nil, apperrors.MissingColumn(ColTitle)
	}

	t := &Table{
		columns: []string{ColTitle},
		titles:  make([]string, 0, len(rows)),
		numeric: map[string][]float64{},
		text:    map[string][]string{},
	}
	raw := make(map[string][]string, len(names))
	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		t.titles = append(t.titles, strings.TrimSpace(cell(row, titleIdx)))
		for i, name := range names {
			if name == "" || i == titleIdx {
				continue
			}
			raw[name] = append(raw[name], cell(row, i))
		}
	}

	for i, name := range names {
		if name == "" || i == titleIdx {
			continue
		}
		t.columns = append(t.columns, name)
		cells := raw[name]
		values := make([]float64, len(cells))
		numeric := true
		for j, c := range cells {
			v, ok := parseCell(c)
			if !ok {
				numeric = false
				break
			}
			values[j] = v
		}
		if numeric {
			t.numeric[name] = values
		} else {
			slog.Debug("Column kept as text", slog.String("column", name))
			t.text[name] = cells
		}
	}
	return t, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func indexOf(row []string, name string) int {
	for i, c := range row {
		if strings.TrimSpace(c) == name {
			return i
		}
	}
	return -1
}
