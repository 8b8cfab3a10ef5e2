package eda

import (
	"fmt"
	"sort"

	"filmeda/internal/dataset"
	apperrors "filmeda/internal/errors"
)

// DefaultChordThreshold is the minimum pair count drawn on the chord diagram.
const DefaultChordThreshold = 5

// GenreOptions configures GenrePairs.
type GenreOptions struct {
	// Denylist holds genre columns, or their cleaned labels, to leave out.
	Denylist  []string
	Threshold int
}

// GenrePairTable holds every pair of retained genres with its film count.
type GenrePairTable struct {
	Genres []string
	All    []PairCount
	Kept   []PairCount
}

// GenrePairs counts, for every unordered pair of retained genres, the films
// flagged with both. All pairs are seeded at zero before counting; Kept
// holds those reaching the threshold.
func GenrePairs(t *dataset.Table, opts GenreOptions) (*GenrePairTable, error) {
	if opts.Threshold < 0 {
		return nil, apperrors.InvalidInput(fmt.Sprintf("threshold %d must not be negative", opts.Threshold))
	}
	deny := make(map[string]bool, len(opts.Denylist))
	for _, d := range opts.Denylist {
		deny[d] = true
	}

	labelOf := make(map[string]string)
	var cols []string
	var labels []string
	for _, col := range t.SelectPrefix(dataset.PrefixGenre) {
		label := dataset.CleanLabel(col, dataset.PrefixGenre)
		if deny[col] || deny[label] {
			continue
		}
		cols = append(cols, col)
		labels = append(labels, label)
		labelOf[col] = label
	}
	if len(labels) < 2 {
		return nil, apperrors.EmptySelection("genres").WithDetail("retained", len(labels))
	}

	table := &GenrePairTable{Genres: labels}
	sort.Strings(table.Genres)
	index := make(map[Pair]int)
	for i, p := range Combinations2(labels) {
		table.All = append(table.All, PairCount{Pair: p})
		index[p] = i
	}

	for r := 0; r < t.Len(); r++ {
		var active []string
		for _, col := range cols {
			if dataset.IsActive(t.Value(r, col)) {
				active = append(active, labelOf[col])
			}
		}
		for _, p := range Combinations2(active) {
			table.All[index[p]].Count++
		}
	}

	for _, pc := range table.All {
		if pc.Count >= opts.Threshold {
			table.Kept = append(table.Kept, pc)
		}
	}
	return table, nil
}
