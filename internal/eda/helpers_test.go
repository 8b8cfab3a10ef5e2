package eda

import (
	"testing"

	"github.com/stretchr/testify/require"

	"filmeda/internal/dataset"
)

// newTable builds a table from titles and columns given in order.
func newTable(t *testing.T, titles []string, cols ...column) *dataset.Table {
	t.Helper()
	values := make(map[string][]float64, len(cols))
	order := make([]string, 0, len(cols))
	for _, c := range cols {
		values[c.name] = c.values
		order = append(order, c.name)
	}
	tbl, err := dataset.NewTable(titles, values, order)
	require.NoError(t, err)
	return tbl
}

type column struct {
	name   string
	values []float64
}

func col(name string, values ...float64) column {
	return column{name: name, values: values}
}
