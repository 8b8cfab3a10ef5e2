package eda

import (
	"fmt"
	"math"
	"sort"

	"filmeda/internal/dataset"
	apperrors "filmeda/internal/errors"
)

// DayValue is one film's box office on its release day of year.
type DayValue struct {
	Title     string
	Day       int
	BoxOffice float64
}

// SeasonalBoxOffice returns one value per film with both a box office and a
// release day, sorted by day then title. There is no binning.
func SeasonalBoxOffice(t *dataset.Table) ([]DayValue, error) {
	complete, err := t.DropMissing(dataset.ColBoxOffice, dataset.ColReleaseDay)
	if err != nil {
		return nil, err
	}
	if complete.Len() == 0 {
		return nil, apperrors.EmptySelection("films with box office and release day")
	}

	out := make([]DayValue, complete.Len())
	for i := range out {
		day := complete.Value(i, dataset.ColReleaseDay)
		if day != math.Trunc(day) || day < 1 || day > 366 {
			return nil, apperrors.InvalidInput(fmt.Sprintf("release day %v out of range", day)).
				WithDetail("title", complete.Title(i))
		}
		out[i] = DayValue{
			Title:     complete.Title(i),
			Day:       int(day),
			BoxOffice: complete.Value(i, dataset.ColBoxOffice),
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}
