package dataset

import (
	"math"
	"strconv"
	"strings"

	apperrors "filmeda/internal/errors"
)

// CleanLabel strips prefix from a column name and turns underscores into spaces.
func CleanLabel(column, prefix string) string {
	label := strings.TrimPrefix(column, prefix)
	label = strings.ReplaceAll(label, "_", " ")
	return strings.TrimSpace(label)
}

// IsActive reports whether an indicator value marks membership.
func IsActive(v float64) bool {
	return v == 1
}

// Clip maps an indicator sum back to 0/1. NaN stays NaN.
func Clip(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	if v > 0 {
		return 1
	}
	return 0
}

// Membership is one (row, label) pair produced by Unpivot.
type Membership struct {
	Row   int
	Label string
}

// Unpivot turns the indicator columns into long form: one Membership per
// (row, column) where the flag is set. Labels are cleaned with prefix.
// Rows are visited in order, columns in the given order.
func (t *Table) Unpivot(columns []string, prefix string) ([]Membership, error) {
	cols := make([][]float64, len(columns))
	labels := make([]string, len(columns))
	for j, name := range columns {
		values, ok := t.numeric[name]
		if !ok {
			return nil, apperrors.MissingColumn(name)
		}
		cols[j] = values
		labels[j] = CleanLabel(name, prefix)
	}

	var out []Membership
	for i := 0; i < t.Len(); i++ {
		for j := range cols {
			if IsActive(cols[j][i]) {
				out = append(out, Membership{Row: i, Label: labels[j]})
			}
		}
	}
	return out, nil
}

// MergeColumns sums src into dst and drops src. When dst is absent, src is
// renamed to dst. NaN cells count as 0 unless both sides are NaN.
func (t *Table) MergeColumns(dst, src string) (*Table, error) {
	srcValues, ok := t.numeric[src]
	if !ok {
		return nil, apperrors.MissingColumn(src)
	}
	dstValues, ok := t.numeric[dst]
	if !ok {
		out, err := t.WithColumn(dst, srcValues)
		if err != nil {
			return nil, err
		}
		return out.DropColumns(src), nil
	}

	merged := make([]float64, len(dstValues))
	for i := range dstValues {
		a, b := dstValues[i], srcValues[i]
		switch {
		case math.IsNaN(a) && math.IsNaN(b):
			merged[i] = math.NaN()
		case math.IsNaN(a):
			merged[i] = b
		case math.IsNaN(b):
			merged[i] = a
		default:
			merged[i] = a + b
		}
	}
	out, err := t.WithColumn(dst, merged)
	if err != nil {
		return nil, err
	}
	return out.DropColumns(src), nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseCell(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if missingMarkers[strings.ToLower(s)] {
		return math.NaN(), true
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
