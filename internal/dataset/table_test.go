package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "filmeda/internal/errors"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()
	nan := math.NaN()
	tbl, err := NewTable(
		[]string{"Alpha", "Beta", "Gamma", "Delta"},
		map[string][]float64{
			ColIMDB:                 {7.5, nan, 8.1, 6.0},
			ColBoxOffice:            {1e6, 2e6, nan, 5e5},
			"Genre_Drama":           {1, 0, 1, 1},
			"Genre_Science_Fiction": {0, 1, 1, nan},
		},
		[]string{ColIMDB, ColBoxOffice, "Genre_Drama", "Genre_Science_Fiction"},
	)
	require.NoError(t, err)
	return tbl
}

func TestNewTable(t *testing.T) {
	tbl := sampleTable(t)

	assert.Equal(t, 4, tbl.Len())
	assert.Equal(t, []string{ColTitle, ColIMDB, ColBoxOffice, "Genre_Drama", "Genre_Science_Fiction"}, tbl.Columns())
	assert.True(t, tbl.Has(ColTitle))
	assert.True(t, tbl.Has("Genre_Drama"))
	assert.False(t, tbl.Has("Genre_Horror"))
	assert.Equal(t, "Gamma", tbl.Title(2))
	assert.Equal(t, "", tbl.Title(9))

	_, err := NewTable([]string{"a"}, map[string][]float64{"x": {1, 2}}, nil)
	assert.True(t, apperrors.IsInvalidInput(err))

	_, err = NewTable([]string{"a"}, map[string][]float64{}, []string{"x"})
	assert.True(t, apperrors.IsMissingColumn(err))
}

func TestTable_Column(t *testing.T) {
	tbl := sampleTable(t)

	values, err := tbl.Column("Genre_Drama")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 1, 1}, values)

	// returned slice is a copy
	values[0] = 42
	assert.Equal(t, 1.0, tbl.Value(0, "Genre_Drama"))

	_, err = tbl.Column("Nope")
	assert.True(t, apperrors.IsMissingColumn(err))
	assert.True(t, math.IsNaN(tbl.Value(0, "Nope")))
}

func TestTable_SelectPrefix(t *testing.T) {
	tbl := sampleTable(t)

	assert.Equal(t, []string{"Genre_Drama", "Genre_Science_Fiction"}, tbl.SelectPrefix(PrefixGenre))
	assert.Empty(t, tbl.SelectPrefix(PrefixDirector))
}

func TestTable_Project(t *testing.T) {
	tbl := sampleTable(t)

	p, err := tbl.Project(ColBoxOffice, ColIMDB)
	require.NoError(t, err)
	assert.Equal(t, []string{ColTitle, ColBoxOffice, ColIMDB}, p.Columns())
	assert.Equal(t, 4, p.Len())
	assert.False(t, p.Has("Genre_Drama"))

	_, err = tbl.Project("Metascore")
	assert.True(t, apperrors.IsMissingColumn(err))
}

func TestTable_DropMissing(t *testing.T) {
	tbl := sampleTable(t)

	complete, err := tbl.DropMissing(ColIMDB, ColBoxOffice)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Delta"}, complete.Titles())
	assert.Equal(t, []float64{1e6, 5e5}, mustColumn(t, complete, ColBoxOffice))

	// source table is untouched
	assert.Equal(t, 4, tbl.Len())

	_, err = tbl.DropMissing("Metascore")
	assert.True(t, apperrors.IsMissingColumn(err))
}

func TestTable_WithColumnAndDrop(t *testing.T) {
	tbl := sampleTable(t)

	added, err := tbl.WithColumn("Flag", []float64{0, 0, 1, 0})
	require.NoError(t, err)
	assert.True(t, added.Has("Flag"))
	assert.False(t, tbl.Has("Flag"))
	assert.Equal(t, "Flag", added.Columns()[len(added.Columns())-1])

	replaced, err := added.WithColumn("Genre_Drama", []float64{0, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, added.Columns(), replaced.Columns())
	assert.Equal(t, 1.0, added.Value(0, "Genre_Drama"))

	_, err = tbl.WithColumn("Short", []float64{1})
	assert.True(t, apperrors.IsInvalidInput(err))
	_, err = tbl.WithColumn(ColTitle, []float64{1, 2, 3, 4})
	assert.Error(t, err)

	dropped := added.DropColumns("Flag", "Genre_Drama", "Unknown_Column", ColTitle)
	assert.Equal(t, []string{ColTitle, ColIMDB, ColBoxOffice, "Genre_Science_Fiction"}, dropped.Columns())
	assert.Len(t, added.Columns(), 6)
}

func TestTable_FilterRowsAndActiveRows(t *testing.T) {
	tbl := sampleTable(t)

	filtered := tbl.FilterRows(func(i int) bool { return i%2 == 0 })
	assert.Equal(t, []string{"Alpha", "Gamma"}, filtered.Titles())
	assert.Equal(t, []float64{7.5, 8.1}, mustColumn(t, filtered, ColIMDB))

	assert.Equal(t, []int{0, 2, 3}, tbl.ActiveRows("Genre_Drama"))
	assert.Equal(t, []int{1, 2}, tbl.ActiveRows("Genre_Science_Fiction"))
	assert.Empty(t, tbl.ActiveRows("Missing"))
}

func mustColumn(t *testing.T, tbl *Table, name string) []float64 {
	t.Helper()
	values, err := tbl.Column(name)
	require.NoError(t, err)
	return values
}
