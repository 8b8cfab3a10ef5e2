package eda

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"filmeda/internal/dataset"
	apperrors "filmeda/internal/errors"
)

// CorrelationOptions configures NominationCorrelation.
type CorrelationOptions struct {
	// Prefix selects the indicator columns, Oscar_Nominated_ by default.
	Prefix string
	// Merge folds a source column into a destination column before
	// correlating, for awards renamed over the years.
	Merge map[string]string
}

// DefaultMerge folds the old Makeup category into its current name.
var DefaultMerge = map[string]string{
	dataset.PrefixNominated + "Makeup": dataset.PrefixNominated + "Makeup_and_Hairstyling",
}

// CorrelationMatrix is a symmetric Pearson matrix over award categories,
// ordered by descending row sum.
type CorrelationMatrix struct {
	Labels  []string
	Columns []string
	Values  *mat.SymDense
}

// Size returns the number of categories.
func (m *CorrelationMatrix) Size() int { return len(m.Labels) }

// At returns the coefficient between categories i and j.
func (m *CorrelationMatrix) At(i, j int) float64 { return m.Values.At(i, j) }

// Rows returns the matrix as a dense row slice.
func (m *CorrelationMatrix) Rows() [][]float64 {
	n := m.Size()
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			rows[i][j] = m.At(i, j)
		}
	}
	return rows
}

// NominationCorrelation computes the Pearson correlation between every pair
// of nomination indicator columns. Missing indicator cells count as 0.
// Columns with zero variance produce NaN rows, including their diagonal.
func NominationCorrelation(t *dataset.Table, opts CorrelationOptions) (*CorrelationMatrix, error) {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = dataset.PrefixNominated
	}
	merge := opts.Merge
	if merge == nil {
		merge = DefaultMerge
	}

	srcs := make([]string, 0, len(merge))
	for src := range merge {
		srcs = append(srcs, src)
	}
	sort.Strings(srcs)
	for _, src := range srcs {
		if !t.Has(src) {
			slog.Debug("Merge source column absent", slog.String("column", src))
			continue
		}
		merged, err := t.MergeColumns(merge[src], src)
		if err != nil {
			return nil, err
		}
		t = merged
	}

	columns := t.SelectPrefix(prefix)
	if len(columns) < 2 {
		return nil, apperrors.EmptySelection("nomination columns").
			WithDetail("prefix", prefix).
			WithDetail("found", len(columns))
	}

	data := make([][]float64, len(columns))
	for i, name := range columns {
		values, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		for r, v := range values {
			if math.IsNaN(v) {
				values[r] = 0
			}
		}
		data[i] = values
	}

	n := len(columns)
	raw := make([][]float64, n)
	for i := range raw {
		raw[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			c := pearson(data[i], data[j])
			raw[i][j] = c
			raw[j][i] = c
		}
	}

	sums := make([]float64, n)
	for i := 0; i < n; i++ {
		for _, v := range raw[i] {
			if !math.IsNaN(v) {
				sums[i] += v
			}
		}
	}
	labels := make([]string, n)
	for i, name := range columns {
		labels[i] = dataset.CleanLabel(name, prefix)
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if sums[ia] != sums[ib] {
			return sums[ia] > sums[ib]
		}
		return labels[ia] < labels[ib]
	})

	m := &CorrelationMatrix{
		Labels:  make([]string, n),
		Columns: make([]string, n),
		Values:  mat.NewSymDense(n, nil),
	}
	for i, oi := range order {
		m.Labels[i] = labels[oi]
		m.Columns[i] = columns[oi]
		for j := i; j < n; j++ {
			m.Values.SetSym(i, j, raw[oi][order[j]])
		}
	}
	return m, nil
}

// pearson returns NaN when either series has zero variance.
func pearson(x, y []float64) float64 {
	if len(x) < 2 || zeroVariance(x) || zeroVariance(y) {
		return math.NaN()
	}
	c := stat.Correlation(x, y, nil)
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return c
}

func zeroVariance(x []float64) bool {
	for _, v := range x[1:] {
		if v != x[0] {
			return false
		}
	}
	return true
}
