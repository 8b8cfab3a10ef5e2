package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmeda/internal/infrastructure"
	"filmeda/internal/operations"
	"filmeda/internal/operations/testutil"
)

// writeDataset writes the operations fixture as a CSV file
func writeDataset(t *testing.T, dir string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("Title")
	for _, c := range testutil.FilmColumns {
		b.WriteString("," + c.Name)
	}
	b.WriteString("\n")
	for i, title := range testutil.FilmTitles {
		b.WriteString(title)
		for _, c := range testutil.FilmColumns {
			b.WriteString(",")
			if v := c.Values[i]; !math.IsNaN(v) {
				b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
			}
		}
		b.WriteString("\n")
	}
	path := filepath.Join(dir, "films.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("FILMEDA_LOGGING_OUTPUT", "file")
	t.Setenv("FILMEDA_PATHS_LOGS_DIR", filepath.Join(dir, "logs"))
	t.Setenv("FILMEDA_RENDER_WIDTH", "480")
	t.Setenv("FILMEDA_RENDER_HEIGHT", "360")
	infrastructure.ResetLoggerForTesting()
	t.Cleanup(infrastructure.ResetLoggerForTesting)
	return dir
}

func TestRun_List(t *testing.T) {
	var out bytes.Buffer
	code := run([]string{"-list"}, &out)

	assert.Equal(t, exitOK, code)
	for _, id := range []string{
		operations.SectionNominationCorrelation,
		operations.SectionGenreChord,
		operations.SectionCollaborationGraph,
	} {
		assert.Contains(t, out.String(), id)
	}
}

func TestRun_AllSections(t *testing.T) {
	dir := setupEnv(t)
	data := writeDataset(t, dir)
	outDir := filepath.Join(dir, "out")

	var out bytes.Buffer
	code := run([]string{"-data", data, "-out", outDir, "-tables"}, &out)

	require.Equal(t, exitOK, code, out.String())
	assert.Contains(t, out.String(), "7 completed, 0 failed")
	assert.FileExists(t, filepath.Join(outDir, operations.ManifestFile))
	assert.FileExists(t, filepath.Join(outDir, "charts", operations.SectionGenreChord+".png"))
	assert.FileExists(t, filepath.Join(outDir, "tables", operations.SectionDirectorSuccess+".csv"))
	assert.FileExists(t, filepath.Join(outDir, "telemetry", "traces.json"))
	assert.FileExists(t, filepath.Join(outDir, "telemetry", "filmeda.prom"))

	manifest, err := operations.LoadManifest(outDir)
	require.NoError(t, err)
	assert.Equal(t, 7, manifest.Completed)
	assert.Equal(t, 8, manifest.Rows)
}

func TestRun_SelectedSectionsSVG(t *testing.T) {
	dir := setupEnv(t)
	data := writeDataset(t, dir)
	outDir := filepath.Join(dir, "out")

	var out bytes.Buffer
	code := run([]string{"-data", data, "-out", outDir, "-format", "svg",
		"-sections", operations.SectionDirectorSuccess + "," + operations.SectionGenreChord}, &out)

	require.Equal(t, exitOK, code, out.String())
	assert.FileExists(t, filepath.Join(outDir, "charts", operations.SectionDirectorSuccess+".svg"))
	assert.NoFileExists(t, filepath.Join(outDir, "charts", operations.SectionRatingScales+".svg"))
}

func TestRun_SectionFailureExitCode(t *testing.T) {
	dir := setupEnv(t)
	data := writeDataset(t, dir)
	t.Setenv("FILMEDA_ANALYSIS_CHORD_THRESHOLD", "100")

	var out bytes.Buffer
	code := run([]string{"-data", data, "-out", filepath.Join(dir, "out")}, &out)

	assert.Equal(t, exitSectionsFailed, code)
	assert.Contains(t, out.String(), "6 completed, 1 failed")
}

func TestRun_SetupFailures(t *testing.T) {
	tests := []struct {
		name string
		args func(dir string) []string
	}{
		{"missing dataset", func(dir string) []string {
			return []string{"-data", filepath.Join(dir, "nope.csv"), "-out", dir}
		}},
		{"bad format", func(dir string) []string {
			return []string{"-data", writeDataset(t, dir), "-out", dir, "-format", "gif"}
		}},
		{"unknown section", func(dir string) []string {
			return []string{"-data", writeDataset(t, dir), "-out", dir, "-sections", "nope"}
		}},
		{"unsupported extension", func(dir string) []string {
			path := filepath.Join(dir, "films.json")
			require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
			return []string{"-data", path, "-out", dir}
		}},
		{"bad flag", func(string) []string { return []string{"-nope"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupEnv(t)
			var out bytes.Buffer
			assert.Equal(t, exitSetupFailed, run(tt.args(dir), &out))
		})
	}
}

func TestRun_DatasetDirectory(t *testing.T) {
	dir := setupEnv(t)
	dataDir := filepath.Join(dir, "data")
	require.NoError(t, os.Mkdir(dataDir, 0755))
	writeDataset(t, dataDir)
	outDir := filepath.Join(dir, "out")

	var out bytes.Buffer
	code := run([]string{"-data", dataDir, "-out", outDir, "-sections", operations.SectionSeasonalBoxOffice}, &out)

	require.Equal(t, exitOK, code, out.String())
	manifest, err := operations.LoadManifest(outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, "films.csv"), manifest.Dataset)
}
