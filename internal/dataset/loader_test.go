package dataset

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "filmeda/internal/errors"
)

const sampleCSV = "\ufeffTitle,IMDB_Rating,Box_Office,Genre_Drama,Notes\n" +
	"Alpha,7.5,\"1,000,000\",1,first\n" +
	"Beta,NA,$2000000,0,\n" +
	"\n" +
	"Gamma,8.1,,1\n"

func TestLoadCSV(t *testing.T) {
	tbl, err := LoadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, tbl.Titles())
	assert.Equal(t, []string{ColTitle, ColIMDB, ColBoxOffice, "Genre_Drama", "Notes"}, tbl.Columns())

	imdb := mustColumn(t, tbl, ColIMDB)
	assert.Equal(t, 7.5, imdb[0])
	assert.True(t, math.IsNaN(imdb[1]))

	box := mustColumn(t, tbl, ColBoxOffice)
	assert.Equal(t, 1e6, box[0])
	assert.Equal(t, 2e6, box[1])
	assert.True(t, math.IsNaN(box[2]))

	assert.False(t, tbl.IsNumeric("Notes"))
	assert.Equal(t, "first", tbl.Text(0, "Notes"))
	_, err = tbl.Column("Notes")
	assert.True(t, apperrors.IsInvalidInput(err))
}

func TestLoadCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(error) bool
	}{
		{"empty", "", apperrors.IsInvalidInput},
		{"no title", "Name,IMDB_Rating\nx,1\n", apperrors.IsMissingColumn},
		{"duplicate header", "Title,A,A\nx,1,2\n", apperrors.IsInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, tt.check(err), err.Error())
		})
	}
}

func TestLoadCSV_SkipsIndexColumn(t *testing.T) {
	tbl, err := LoadCSV(strings.NewReader(",Title,Genre_Drama\n0,Alpha,1\n1,Beta,0\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{ColTitle, "Genre_Drama"}, tbl.Columns())
}

func TestLoad_Dispatch(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "films.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0644))
	tbl, err := Load(csvPath)
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())

	_, err = Load(filepath.Join(dir, "films.json"))
	assert.ErrorIs(t, err, apperrors.ErrLoadFailed)

	_, err = Load(filepath.Join(dir, "missing.csv"))
	assert.ErrorIs(t, err, apperrors.ErrLoadFailed)
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "films.xlsx")

	f := excelize.NewFile()
	_, err := f.NewSheet("Films")
	require.NoError(t, err)

	// Sheet1 has no Title header and must be skipped.
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"notes"}))
	require.NoError(t, f.SetSheetRow("Films", "A1", &[]interface{}{"Scraped 2024"}))
	require.NoError(t, f.SetSheetRow("Films", "A2", &[]interface{}{"Title", "IMDB_Rating", "Rating_PG-13"}))
	require.NoError(t, f.SetSheetRow("Films", "A3", &[]interface{}{"Alpha", 7.5, 1}))
	require.NoError(t, f.SetSheetRow("Films", "A4", &[]interface{}{"Beta", "", 0}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tbl, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Alpha", "Beta"}, tbl.Titles())
	imdb := mustColumn(t, tbl, ColIMDB)
	assert.Equal(t, 7.5, imdb[0])
	assert.True(t, math.IsNaN(imdb[1]))
	assert.Equal(t, []int{0}, tbl.ActiveRows("Rating_PG-13"))
}

func TestLoadXLSX_NoTitleSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Name", "Score"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := LoadXLSX(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrLoadFailed)
	assert.True(t, errors.Is(err, apperrors.ErrMissingColumn))
}
