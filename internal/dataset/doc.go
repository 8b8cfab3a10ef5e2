// Package dataset holds the film table the analysis sections read from.
//
// A Table is loaded once from a flat CSV or XLSX file and never mutated:
// every selection, projection or filter returns a new Table sharing the
// untouched column slices. Numeric cells that are empty or marked as not
// available are stored as NaN so that complete-case filtering can drop them.
//
// Indicator columns are grouped by name prefix (see schema.go). A value of
// exactly 1 marks membership; anything else, NaN included, does not.
package dataset
