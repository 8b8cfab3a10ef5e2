package operations_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmeda/internal/config"
	apperrors "filmeda/internal/errors"
	"filmeda/internal/exporter"
	"filmeda/internal/operations"
	"filmeda/internal/operations/testutil"
	"filmeda/internal/render"
)

func TestDefaultSections_ProduceCharts(t *testing.T) {
	tests := []struct {
		id      string
		rowsOut int
	}{
		{operations.SectionNominationCorrelation, 3},
		{operations.SectionRatingScales, 6},
		{operations.SectionAdvisoryBoxOffice, 6},
		{operations.SectionDirectorSuccess, 4},
		{operations.SectionSeasonalBoxOffice, 6},
		{operations.SectionCollaborationGraph, 6},
		{operations.SectionGenreChord, 1},
	}

	registry, err := operations.NewDefaultRegistry()
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			store := testutil.NewMemoryStore()
			env := testutil.NewEnvironment(t, store)

			section, err := registry.Get(tt.id)
			require.NoError(t, err)

			outcome, err := section.Execute(context.Background(), env)
			require.NoError(t, err)

			assert.Equal(t, 8, outcome.RowsIn)
			assert.Equal(t, tt.rowsOut, outcome.RowsOut)
			assert.NotEmpty(t, outcome.Summary)
			require.Equal(t, []string{tt.id + ".png"}, outcome.Artifacts)
			assert.Empty(t, outcome.Tables)

			img, err := png.Decode(bytes.NewReader(store.Bytes(tt.id + ".png")))
			require.NoError(t, err)
			assert.Equal(t, 480, img.Bounds().Dx())
			assert.Equal(t, 360, img.Bounds().Dy())
		})
	}
}

func TestDefaultSections_SVG(t *testing.T) {
	store := testutil.NewMemoryStore()
	env := testutil.NewEnvironment(t, store)
	env.Render.Format = render.FormatSVG

	registry, err := operations.NewDefaultRegistry()
	require.NoError(t, err)

	report, err := operations.NewRunner(registry, env, nil).Run(context.Background())
	require.NoError(t, err)
	assert.False(t, report.HasFailures())

	names := store.Names()
	require.Len(t, names, 7)
	for _, name := range names {
		assert.True(t, strings.HasSuffix(name, ".svg"), name)
		assert.Contains(t, string(store.Bytes(name)), "<svg")
	}
}

func TestDefaultSections_ExportTables(t *testing.T) {
	dir := t.TempDir()
	paths := &config.Paths{ChartsDir: filepath.Join(dir, "charts"), TablesDir: filepath.Join(dir, "tables")}
	env := testutil.NewEnvironment(t, operations.NewDirStore(paths.ChartsDir))
	env.Tables = exporter.NewTableWriter(exporter.NewCSVWriter(paths))

	registry, err := operations.NewDefaultRegistry()
	require.NoError(t, err)

	report, err := operations.NewRunner(registry, env, nil).Run(context.Background())
	require.NoError(t, err)
	require.False(t, report.HasFailures())
	assert.Len(t, report.Artifacts(), 14)

	for _, id := range registry.ListIDs() {
		assert.FileExists(t, filepath.Join(paths.ChartsDir, id+".png"))
		assert.FileExists(t, filepath.Join(paths.TablesDir, id+".csv"))
	}

	data, err := os.ReadFile(filepath.Join(paths.TablesDir, operations.SectionCollaborationGraph+".csv"))
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\ufeff")))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Person_A", "Person_B", "Film"}, records[0])
	// A and W1 worked on two films: parallel edges survive in the export
	assert.Equal(t, []string{"A", "W1", "F1"}, records[1])
	assert.Equal(t, []string{"A", "W1", "F2"}, records[2])
	assert.Len(t, records, 7)
}

func TestGenreChord_NothingAtThreshold(t *testing.T) {
	env := testutil.NewEnvironment(t, testutil.NewMemoryStore())
	env.Analysis.ChordThreshold = 50

	_, err := operations.NewGenreChordSection().Execute(context.Background(), env)
	require.Error(t, err)
	assert.True(t, apperrors.IsEmptySelection(err))
}

func TestCollaborationGraph_OmitsUnlinkedPeople(t *testing.T) {
	env := testutil.NewEnvironment(t, testutil.NewMemoryStore())
	// P only ever works with the unknown director on F7 and F8
	tbl, err := env.Table.WithColumn("Writer_P", []float64{0, 0, 0, 0, 0, 0, 1, 1})
	require.NoError(t, err)
	env.Table = tbl

	outcome, err := operations.NewCollaborationGraphSection().Execute(context.Background(), env)
	require.NoError(t, err)

	assert.Equal(t, 6, outcome.RowsOut)
	assert.Equal(t, "4 nodes, 6 edges", outcome.Summary)
}

func TestRatingScales_NeedsThreeColumns(t *testing.T) {
	env := testutil.NewEnvironment(t, testutil.NewMemoryStore())
	env.Analysis.RatingColumns = []string{"IMDB_Rating"}

	_, err := operations.NewRatingScalesSection().Execute(context.Background(), env)
	require.Error(t, err)
	assert.Equal(t, operations.ErrorTypeValidation, operations.GetErrorType(err))
}

func TestSection_MissingColumnFailsOnlyThatSection(t *testing.T) {
	store := testutil.NewMemoryStore()
	env := testutil.NewEnvironment(t, store)
	env.Table = env.Table.DropColumns("Box_Office")

	registry, err := operations.NewDefaultRegistry()
	require.NoError(t, err)

	report, err := operations.NewRunner(registry, env, nil).Run(context.Background())
	require.NoError(t, err)

	for _, id := range []string{operations.SectionAdvisoryBoxOffice, operations.SectionSeasonalBoxOffice} {
		state := report.Get(id)
		assert.Equal(t, operations.SectionStatusFailed, state.Status, id)
		assert.True(t, apperrors.IsMissingColumn(state.Error), id)
	}
	assert.Equal(t, 5, report.Count(operations.SectionStatusCompleted))
	assert.NotContains(t, store.Names(), operations.SectionSeasonalBoxOffice+".png")
}

func TestDirStore_RemovesFailedRender(t *testing.T) {
	dir := t.TempDir()
	env := testutil.NewEnvironment(t, operations.NewDirStore(dir))
	env.Render.Width = 10

	_, err := operations.NewDirectorSuccessSection().Execute(context.Background(), env)
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, operations.SectionDirectorSuccess+".png"))
}

func TestSections_Idempotent(t *testing.T) {
	env := testutil.NewEnvironment(t, testutil.NewMemoryStore())
	section := operations.NewCollaborationGraphSection()

	first, err := section.Execute(context.Background(), env)
	require.NoError(t, err)
	second, err := section.Execute(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, first.RowsOut, second.RowsOut)
	assert.Equal(t, first.Summary, second.Summary)
}
