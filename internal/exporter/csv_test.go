package exporter

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmeda/internal/config"
)

func setupTestEnv(t *testing.T) (*TableWriter, *config.Paths) {
	t.Helper()
	dir := t.TempDir()
	paths, err := config.NewPaths(config.PathsConfig{
		Dataset:   filepath.Join(dir, "films.csv"),
		OutputDir: filepath.Join(dir, "out"),
		LogsDir:   filepath.Join(dir, "logs"),
	})
	require.NoError(t, err)
	return NewTableWriter(NewCSVWriter(paths)), paths
}

func readCSV(t *testing.T, path string) (string, [][]string) {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(content), "\ufeff"))).ReadAll()
	require.NoError(t, err)
	return string(content), records
}

func TestTableWriter_Write(t *testing.T) {
	tables, paths := setupTestEnv(t)

	path, err := tables.Write("director-success",
		[]string{"director", "nominations", "wins"},
		[][]string{{"B", "2", "1"}, {"A, Jr.", "2", "0"}})
	require.NoError(t, err)
	assert.Equal(t, paths.GetTablePath("director-success.csv"), path)

	content, records := readCSV(t, path)
	assert.True(t, strings.HasPrefix(content, "\ufeff"), "missing BOM")
	assert.Equal(t, [][]string{
		{"director", "nominations", "wins"},
		{"B", "2", "1"},
		{"A, Jr.", "2", "0"},
	}, records)
}

func TestTableWriter_Errors(t *testing.T) {
	tables, _ := setupTestEnv(t)

	_, err := tables.Write(" ", []string{"a"}, nil)
	assert.Error(t, err)

	_, err = tables.Write("ragged", []string{"a", "b"}, [][]string{{"1"}})
	assert.Error(t, err)
}

func TestCSVWriter_AbsolutePath(t *testing.T) {
	w := NewCSVWriter(nil)
	target := filepath.Join(t.TempDir(), "nested", "plain.csv")

	path, err := w.WriteCSV(target, WriteOptions{Records: [][]string{{"x"}}})
	require.NoError(t, err)
	assert.Equal(t, target, path)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "x\n", string(content))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "0.67", FormatFloat(2.0/3.0, 2))
	assert.Equal(t, "", FormatFloat(math.NaN(), 2))
	assert.Equal(t, "12", FormatInt(12))
}
