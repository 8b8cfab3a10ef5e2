package eda

import (
	"fmt"

	"filmeda/internal/dataset"
	apperrors "filmeda/internal/errors"
)

// RatingPoint is one film placed on three rating scales.
type RatingPoint struct {
	Title   string
	X, Y, Z float64
}

// RatingTriples returns the films rated on all three scales.
func RatingTriples(t *dataset.Table, cols [3]string) ([]RatingPoint, error) {
	complete, err := t.DropMissing(cols[0], cols[1], cols[2])
	if err != nil {
		return nil, err
	}
	if complete.Len() == 0 {
		return nil, apperrors.EmptySelection("films rated on every scale")
	}

	var values [3][]float64
	for k, name := range cols {
		if values[k], err = complete.Column(name); err != nil {
			return nil, err
		}
	}

	points := make([]RatingPoint, complete.Len())
	for i := range points {
		points[i] = RatingPoint{
			Title: complete.Title(i),
			X:     values[0][i],
			Y:     values[1][i],
			Z:     values[2][i],
		}
	}
	return points, nil
}

// AdvisoryPoint is one (film, advisory category) row.
type AdvisoryPoint struct {
	Title     string
	Category  string
	BoxOffice float64
	Rating    float64
}

// AdvisoryColumns returns the standard advisory columns present in t.
func AdvisoryColumns(t *dataset.Table) []string {
	var cols []string
	for _, cat := range dataset.AdvisoryCategories {
		name := dataset.PrefixAdvisory + cat
		if t.IsNumeric(name) {
			cols = append(cols, name)
		}
	}
	return cols
}

// AdvisoryBoxOffice unpivots the advisory flags of every film that has both
// a box office value and a rating on ratingCol. Each flagged category yields
// one row; films without a standard category are dropped.
func AdvisoryBoxOffice(t *dataset.Table, ratingCol string) ([]AdvisoryPoint, error) {
	cols := AdvisoryColumns(t)
	if len(cols) == 0 {
		return nil, apperrors.EmptySelection("advisory rating columns").
			WithDetail("prefix", dataset.PrefixAdvisory)
	}

	complete, err := t.DropMissing(ratingCol, dataset.ColBoxOffice)
	if err != nil {
		return nil, err
	}
	rows, err := complete.Unpivot(cols, dataset.PrefixAdvisory)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.EmptySelection(fmt.Sprintf("films with an advisory rating and %s", ratingCol))
	}

	points := make([]AdvisoryPoint, len(rows))
	for i, m := range rows {
		points[i] = AdvisoryPoint{
			Title:     complete.Title(m.Row),
			Category:  m.Label,
			BoxOffice: complete.Value(m.Row, dataset.ColBoxOffice),
			Rating:    complete.Value(m.Row, ratingCol),
		}
	}
	return points, nil
}

// GroupByCategory splits advisory rows by category in display order.
func GroupByCategory(points []AdvisoryPoint) ([]string, map[string][]AdvisoryPoint) {
	groups := make(map[string][]AdvisoryPoint)
	for _, p := range points {
		groups[p.Category] = append(groups[p.Category], p)
	}
	var order []string
	for _, cat := range dataset.AdvisoryCategories {
		if len(groups[cat]) > 0 {
			order = append(order, cat)
		}
	}
	return order, groups
}
