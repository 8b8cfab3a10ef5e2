package dataset

import (
	"fmt"
	"math"
	"sort"
	"strings"

	apperrors "filmeda/internal/errors"
)

// Table is an immutable, column-major film table. The Title column is kept
// as text; every other column is numeric unless a cell failed to parse, in
// which case the whole column is kept as text.
type Table struct {
	columns []string
	titles  []string
	numeric map[string][]float64
	text    map[string][]string
}

// NewTable builds a table from a title column and numeric columns. The
// column order follows order; names missing from order are appended sorted.
func NewTable(titles []string, numeric map[string][]float64, order []string) (*Table, error) {
	t := &Table{
		titles:  titles,
		numeric: make(map[string][]float64, len(numeric)),
		text:    map[string][]string{},
		columns: []string{ColTitle},
	}
	seen := map[string]bool{ColTitle: true}
	add := func(name string) error {
		if seen[name] {
			return nil
		}
		values, ok := numeric[name]
		if !ok {
			return apperrors.MissingColumn(name)
		}
		if len(values) != len(titles) {
			return apperrors.InvalidInput(fmt.Sprintf("column %q has %d values, want %d", name, len(values), len(titles)))
		}
		seen[name] = true
		t.columns = append(t.columns, name)
		t.numeric[name] = values
		return nil
	}
	for _, name := range order {
		if err := add(name); err != nil {
			return nil, err
		}
	}
	rest := make([]string, 0, len(numeric))
	for name := range numeric {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		if err := add(name); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.titles) }

// Columns returns the column names in table order, Title first.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Has reports whether the column exists.
func (t *Table) Has(name string) bool {
	if name == ColTitle {
		return true
	}
	if _, ok := t.numeric[name]; ok {
		return true
	}
	_, ok := t.text[name]
	return ok
}

// IsNumeric reports whether the column exists and holds numbers.
func (t *Table) IsNumeric(name string) bool {
	_, ok := t.numeric[name]
	return ok
}

// Column returns a copy of a numeric column.
func (t *Table) Column(name string) ([]float64, error) {
	values, ok := t.numeric[name]
	if !ok {
		if t.Has(name) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("column %q is not numeric", name)).
				WithDetail("column", name)
		}
		return nil, apperrors.MissingColumn(name)
	}
	out := make([]float64, len(values))
	copy(out, values)
	return out, nil
}

// Value returns a single numeric cell, NaN when the column is not numeric.
func (t *Table) Value(row int, name string) float64 {
	values, ok := t.numeric[name]
	if !ok || row < 0 || row >= len(values) {
		return math.NaN()
	}
	return values[row]
}

// Text returns a single cell of a text column, or the formatted number.
func (t *Table) Text(row int, name string) string {
	if name == ColTitle {
		return t.Title(row)
	}
	if values, ok := t.text[name]; ok && row >= 0 && row < len(values) {
		return values[row]
	}
	v := t.Value(row, name)
	if math.IsNaN(v) {
		return ""
	}
	return formatNumber(v)
}

// Title returns the film title of a row.
func (t *Table) Title(row int) string {
	if row < 0 || row >= len(t.titles) {
		return ""
	}
	return t.titles[row]
}

// Titles returns a copy of the title column.
func (t *Table) Titles() []string {
	out := make([]string, len(t.titles))
	copy(out, t.titles)
	return out
}

// SelectPrefix returns the numeric columns starting with prefix, in table order.
func (t *Table) SelectPrefix(prefix string) []string {
	var out []string
	for _, name := range t.columns {
		if name == ColTitle {
			continue
		}
		if _, ok := t.numeric[name]; ok && strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}

// Project returns a table holding Title plus the named columns, in the given order.
func (t *Table) Project(names ...string) (*Table, error) {
	out := &Table{
		titles:  t.titles,
		numeric: make(map[string][]float64, len(names)),
		text:    map[string][]string{},
		columns: []string{ColTitle},
	}
	for _, name := range names {
		if name == ColTitle {
			continue
		}
		if values, ok := t.numeric[name]; ok {
			out.numeric[name] = values
		} else if values, ok := t.text[name]; ok {
			out.text[name] = values
		} else {
			return nil, apperrors.MissingColumn(name)
		}
		out.columns = append(out.columns, name)
	}
	return out, nil
}

// DropMissing keeps only rows where every named numeric column is non-NaN.
func (t *Table) DropMissing(names ...string) (*Table, error) {
	cols := make([][]float64, 0, len(names))
	for _, name := range names {
		values, ok := t.numeric[name]
		if !ok {
			if t.Has(name) {
				return nil, apperrors.InvalidInput(fmt.Sprintf("column %q is not numeric", name))
			}
			return nil, apperrors.MissingColumn(name)
		}
		cols = append(cols, values)
	}
	return t.FilterRows(func(i int) bool {
		for _, values := range cols {
			if math.IsNaN(values[i]) {
				return false
			}
		}
		return true
	}), nil
}

// FilterRows returns a table with the rows for which keep returns true.
func (t *Table) FilterRows(keep func(i int) bool) *Table {
	idx := make([]int, 0, len(t.titles))
	for i := range t.titles {
		if keep(i) {
			idx = append(idx, i)
		}
	}

	out := &Table{
		columns: t.columns,
		titles:  make([]string, len(idx)),
		numeric: make(map[string][]float64, len(t.numeric)),
		text:    make(map[string][]string, len(t.text)),
	}
	for j, i := range idx {
		out.titles[j] = t.titles[i]
	}
	for name, values := range t.numeric {
		nv := make([]float64, len(idx))
		for j, i := range idx {
			nv[j] = values[i]
		}
		out.numeric[name] = nv
	}
	for name, values := range t.text {
		tv := make([]string, len(idx))
		for j, i := range idx {
			tv[j] = values[i]
		}
		out.text[name] = tv
	}
	return out
}

// WithColumn returns a table with name set to values, replacing an existing
// column in place or appending a new one.
func (t *Table) WithColumn(name string, values []float64) (*Table, error) {
	if name == ColTitle {
		return nil, apperrors.InvalidInput("the Title column cannot be replaced")
	}
	if len(values) != len(t.titles) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("column %q has %d values, want %d", name, len(values), len(t.titles)))
	}
	out := t.shallowCopy()
	if !t.Has(name) {
		out.columns = append(out.columns, name)
	}
	delete(out.text, name)
	out.numeric[name] = values
	return out, nil
}

// DropColumns returns a table without the named columns. Unknown names and
// Title are ignored.
func (t *Table) DropColumns(names ...string) *Table {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		if n != ColTitle {
			drop[n] = true
		}
	}
	out := t.shallowCopy()
	out.columns = out.columns[:0]
	for _, name := range t.columns {
		if drop[name] {
			delete(out.numeric, name)
			delete(out.text, name)
			continue
		}
		out.columns = append(out.columns, name)
	}
	return out
}

// ActiveRows returns the indices of rows whose indicator column is set.
func (t *Table) ActiveRows(name string) []int {
	values := t.numeric[name]
	var rows []int
	for i, v := range values {
		if IsActive(v) {
			rows = append(rows, i)
		}
	}
	return rows
}

func (t *Table) shallowCopy() *Table {
	out := &Table{
		columns: make([]string, len(t.columns)),
		titles:  t.titles,
		numeric: make(map[string][]float64, len(t.numeric)+1),
		text:    make(map[string][]string, len(t.text)),
	}
	copy(out.columns, t.columns)
	for k, v := range t.numeric {
		out.numeric[k] = v
	}
	for k, v := range t.text {
		out.text[k] = v
	}
	return out
}
