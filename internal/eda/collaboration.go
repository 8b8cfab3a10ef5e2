package eda

import (
	"sort"
	"strings"

	"filmeda/internal/dataset"
	apperrors "filmeda/internal/errors"
)

// DefaultUnknownPerson is the placeholder credited when a name was not scraped.
const DefaultUnknownPerson = "Unknown"

// CollaborationOptions configures Collaborations.
type CollaborationOptions struct {
	Unknown string
}

// FilmCast lists the people credited on one film, sorted.
type FilmCast struct {
	Title   string
	Persons []string
}

// Edge links two people who worked on the same film.
type Edge struct {
	Pair
	Film string
}

// CollaborationSet is the filtered cast of every film and the edges between
// people, one per film they share.
type CollaborationSet struct {
	Persons []string
	Films   []FilmCast
	Edges   []Edge
}

// Collaborations merges writer and director credits per person, drops films
// with a single credited person, drops people credited on a single remaining
// film, drops the unknown placeholder, and pairs everyone left on each film.
// Persons holds only people with at least one edge; someone whose partners
// were all the placeholder is left out of both Persons and Films.
func Collaborations(t *dataset.Table, opts CollaborationOptions) (*CollaborationSet, error) {
	unknown := opts.Unknown
	if unknown == "" {
		unknown = DefaultUnknownPerson
	}

	cols := append(t.SelectPrefix(dataset.PrefixWriter), t.SelectPrefix(dataset.PrefixDirector)...)
	if len(cols) == 0 {
		return nil, apperrors.EmptySelection("writer or director columns")
	}

	// person -> set of rows, which clips a writer-director to a single credit
	credits := make(map[string]map[int]bool)
	for _, col := range cols {
		name := personName(col)
		rows := t.ActiveRows(col)
		if len(rows) == 0 {
			continue
		}
		if credits[name] == nil {
			credits[name] = make(map[int]bool)
		}
		for _, r := range rows {
			credits[name][r] = true
		}
	}

	perFilm := make([]int, t.Len())
	for _, rows := range credits {
		for r := range rows {
			perFilm[r]++
		}
	}

	filmCount := make(map[string]int, len(credits))
	for name, rows := range credits {
		for r := range rows {
			if perFilm[r] > 1 {
				filmCount[name]++
			}
		}
	}

	kept := make(map[string]bool)
	for name, n := range filmCount {
		if n > 1 && name != unknown {
			kept[name] = true
		}
	}

	set := &CollaborationSet{}
	for name := range kept {
		set.Persons = append(set.Persons, name)
	}
	sort.Strings(set.Persons)

	for r := 0; r < t.Len(); r++ {
		if perFilm[r] <= 1 {
			continue
		}
		var persons []string
		for _, name := range set.Persons {
			if credits[name][r] {
				persons = append(persons, name)
			}
		}
		if len(persons) == 0 {
			continue
		}
		set.Films = append(set.Films, FilmCast{Title: t.Title(r), Persons: persons})
	}

	set.Edges = CollaborationEdges(set.Films)
	set.pruneUnconnected()
	return set, nil
}

// pruneUnconnected keeps the people and film casts that appear on an edge
func (s *CollaborationSet) pruneUnconnected() {
	linked := make(map[string]bool, len(s.Persons))
	for _, e := range s.Edges {
		linked[e.A] = true
		linked[e.B] = true
	}

	persons := s.Persons[:0]
	for _, name := range s.Persons {
		if linked[name] {
			persons = append(persons, name)
		}
	}
	s.Persons = persons

	films := s.Films[:0]
	for _, f := range s.Films {
		var cast []string
		for _, name := range f.Persons {
			if linked[name] {
				cast = append(cast, name)
			}
		}
		if len(cast) > 0 {
			films = append(films, FilmCast{Title: f.Title, Persons: cast})
		}
	}
	s.Films = films
}

// CollaborationEdges pairs the people of each film. A pair working on k
// films yields k parallel edges.
func CollaborationEdges(films []FilmCast) []Edge {
	var edges []Edge
	for _, f := range films {
		for _, p := range Combinations2(f.Persons) {
			edges = append(edges, Edge{Pair: p, Film: f.Title})
		}
	}
	return edges
}

func personName(col string) string {
	if strings.HasPrefix(col, dataset.PrefixWriter) {
		return dataset.CleanLabel(col, dataset.PrefixWriter)
	}
	return dataset.CleanLabel(col, dataset.PrefixDirector)
}
