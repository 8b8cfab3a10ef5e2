package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"filmeda/internal/config"
	"filmeda/internal/dataset"
	"filmeda/internal/operations"
	"filmeda/internal/render"
)

var nan = math.NaN()

// FilmTitles are the rows of FilmTable
var FilmTitles = []string{"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8"}

// FilmColumns holds the fixture columns in file order. F4 lacks an IMDB
// rating, F5 a Metascore and box office, F7 a release day.
var FilmColumns = []struct {
	Name   string
	Values []float64
}{
	{"IMDB_Rating", []float64{7.5, 8.1, 6.9, nan, 7.2, 8.4, 6.5, 7.8}},
	{"Metascore", []float64{70, 85, 60, 72, nan, 90, 55, 80}},
	{"RT_Score", []float64{88, 95, 70, 80, 75, 97, 60, 91}},
	{"Box_Office", []float64{1.2e8, 3.4e8, 5e7, 9e7, nan, 2.1e8, 4e7, 1.5e8}},
	{"Release_Day", []float64{45, 120, 200, 310, 15, 350, nan, 180}},
	{"Oscar_Nominated_Best_Picture", []float64{1, 1, 0, 1, 0, 1, 0, 1}},
	{"Oscar_Nominated_Directing", []float64{1, 0, 0, 1, 0, 1, 0, 0}},
	{"Oscar_Nominated_Makeup", []float64{0, 1, 0, 0, 0, 0, 0, 0}},
	{"Oscar_Nominated_Makeup_and_Hairstyling", []float64{0, 0, 1, 0, 0, 1, 0, 0}},
	{"Oscar_Won_Best_Picture", []float64{0, 1, 0, 0, 0, 1, 0, 0}},
	{"Oscar_Won_Directing", []float64{0, 0, 0, 1, 0, 1, 0, 0}},
	{"Rating_PG-13", []float64{1, 0, 1, 0, 0, 1, 0, 0}},
	{"Rating_R", []float64{0, 1, 0, 1, 0, 0, 1, 0}},
	{"Rating_PG", []float64{0, 0, 0, 0, 1, 0, 0, 1}},
	{"Genre_Drama", []float64{1, 1, 1, 1, 1, 0, 1, 1}},
	{"Genre_Romance", []float64{1, 1, 0, 1, 1, 0, 1, 0}},
	{"Genre_Comedy", []float64{0, 0, 1, 0, 1, 1, 0, 0}},
	{"Genre_Action", []float64{0, 0, 0, 0, 0, 1, 1, 1}},
	{"Director_A", []float64{1, 1, 0, 0, 0, 0, 0, 0}},
	{"Director_B", []float64{0, 0, 1, 1, 0, 0, 0, 0}},
	{"Director_C", []float64{0, 0, 0, 0, 1, 1, 0, 0}},
	{"Director_Unknown", []float64{0, 0, 0, 0, 0, 0, 1, 1}},
	{"Writer_W1", []float64{1, 1, 1, 1, 0, 0, 0, 0}},
	{"Writer_W2", []float64{0, 0, 0, 1, 1, 0, 0, 0}},
}

// FilmTable builds a small table that every default section can run on
func FilmTable(t testing.TB) *dataset.Table {
	t.Helper()
	values := make(map[string][]float64, len(FilmColumns))
	order := make([]string, 0, len(FilmColumns))
	for _, c := range FilmColumns {
		values[c.Name] = append([]float64(nil), c.Values...)
		order = append(order, c.Name)
	}
	tbl, err := dataset.NewTable(append([]string(nil), FilmTitles...), values, order)
	require.NoError(t, err)
	return tbl
}

// NewEnvironment returns an environment over FilmTable with default
// analysis settings, small charts and the given store
func NewEnvironment(t testing.TB, store operations.ArtifactStore) *operations.Environment {
	t.Helper()
	return &operations.Environment{
		Table:     FilmTable(t),
		Analysis:  config.Default().Analysis,
		Render:    render.Options{Format: render.FormatPNG, Width: 480, Height: 360},
		Captions:  true,
		Artifacts: store,
	}
}
