package eda

import (
	"sort"

	"filmeda/internal/dataset"
	apperrors "filmeda/internal/errors"
)

// DirectorOptions configures DirectorSuccess.
type DirectorOptions struct {
	TopN      int
	WinWeight int
}

// DirectorScore is the award tally of one director.
type DirectorScore struct {
	Name        string
	Films       int
	Nominations int
	Wins        int
	Score       int
}

// DirectorSuccess credits every nomination and win flagged on a film to each
// of its directors, whatever the category. The TopN directors by
// nominations + WinWeight*wins are returned ordered by wins.
func DirectorSuccess(t *dataset.Table, opts DirectorOptions) ([]DirectorScore, error) {
	if opts.TopN <= 0 {
		return nil, apperrors.InvalidInput("top-N must be positive")
	}
	if opts.WinWeight < 0 {
		return nil, apperrors.InvalidInput("win weight must not be negative")
	}

	directors := t.SelectPrefix(dataset.PrefixDirector)
	if len(directors) == 0 {
		return nil, apperrors.EmptySelection("director columns")
	}
	nominated := t.SelectPrefix(dataset.PrefixNominated)
	won := t.SelectPrefix(dataset.PrefixWon)
	if len(nominated) == 0 && len(won) == 0 {
		return nil, apperrors.EmptySelection("award columns")
	}

	noms := countActive(t, nominated)
	wins := countActive(t, won)

	scores := make([]DirectorScore, 0, len(directors))
	for _, col := range directors {
		films := t.ActiveRows(col)
		if len(films) == 0 {
			continue
		}
		s := DirectorScore{Name: dataset.CleanLabel(col, dataset.PrefixDirector), Films: len(films)}
		for _, row := range films {
			s.Nominations += noms[row]
			s.Wins += wins[row]
		}
		s.Score = s.Nominations + opts.WinWeight*s.Wins
		scores = append(scores, s)
	}
	if len(scores) == 0 {
		return nil, apperrors.EmptySelection("credited directors")
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Name < scores[j].Name
	})
	if len(scores) > opts.TopN {
		scores = scores[:opts.TopN]
	}
	sort.SliceStable(scores, func(i, j int) bool {
		a, b := scores[i], scores[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.Name < b.Name
	})
	return scores, nil
}

// countActive returns, per row, how many of cols are flagged.
func countActive(t *dataset.Table, cols []string) []int {
	counts := make([]int, t.Len())
	for _, col := range cols {
		for _, row := range t.ActiveRows(col) {
			counts[row]++
		}
	}
	return counts
}
