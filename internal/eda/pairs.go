package eda

import "sort"

// Pair is an unordered pair of labels stored with A < B.
type Pair struct {
	A string
	B string
}

// NewPair orders a and b.
func NewPair(a, b string) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// PairCount is a pair with the number of films it occurs in.
type PairCount struct {
	Pair
	Count int
}

// Combinations2 returns every unordered pair of distinct labels in lexical
// order. Duplicate labels are collapsed; no pair joins a label to itself.
func Combinations2(labels []string) []Pair {
	uniq := make([]string, 0, len(labels))
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			uniq = append(uniq, l)
		}
	}
	sort.Strings(uniq)

	pairs := make([]Pair, 0, len(uniq)*(len(uniq)-1)/2)
	for i := 0; i < len(uniq); i++ {
		for j := i + 1; j < len(uniq); j++ {
			pairs = append(pairs, Pair{A: uniq[i], B: uniq[j]})
		}
	}
	return pairs
}
