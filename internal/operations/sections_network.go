package operations

import (
	"context"
	"fmt"
	"io"
	"sort"

	apperrors "filmeda/internal/errors"
	"filmeda/internal/eda"
	"filmeda/internal/exporter"
	"filmeda/internal/graph"
	"filmeda/internal/render"
)

// networkLabels is how many of the best connected people get a name label
const networkLabels = 15

// CollaborationGraphSection draws who worked with whom
type CollaborationGraphSection struct {
	BaseSection
}

// NewCollaborationGraphSection creates the section
func NewCollaborationGraphSection() *CollaborationGraphSection {
	return &CollaborationGraphSection{
		BaseSection: NewBaseSection(SectionCollaborationGraph, "Writer and director collaborations"),
	}
}

// Execute implements Section
func (s *CollaborationGraphSection) Execute(ctx context.Context, env *Environment) (*Outcome, error) {
	set, err := eda.Collaborations(env.Table, eda.CollaborationOptions{Unknown: env.Analysis.UnknownPerson})
	if err != nil {
		return nil, err
	}
	if len(set.Edges) == 0 {
		return nil, apperrors.EmptySelection("collaborations between recurring people")
	}

	g := graph.NewMultigraph()
	for _, e := range set.Edges {
		if err := g.AddEdge(e.A, e.B); err != nil {
			return nil, err
		}
	}

	positions := graph.SpringLayout(g, graph.LayoutOptions{
		Iterations: env.Analysis.LayoutIterations,
		K:          env.Analysis.LayoutRepulsion,
		Seed:       env.Analysis.LayoutSeed,
	})

	nodes := make([]render.NetworkNode, 0, len(positions))
	for _, name := range g.Nodes() {
		pos := positions[name]
		nodes = append(nodes, render.NetworkNode{Name: name, X: pos.X, Y: pos.Y, Degree: g.Degree(name)})
	}

	// Parallel edges draw on top of each other; one line per pair
	seen := make(map[eda.Pair]bool)
	var links []render.Link
	for _, e := range set.Edges {
		if seen[e.Pair] {
			continue
		}
		seen[e.Pair] = true
		links = append(links, render.Link{From: e.A, To: e.B, Weight: float64(g.Multiplicity(e.A, e.B))})
	}

	opts := env.chartOptions("Writer and director collaborations",
		fmt.Sprintf("%d people, %d collaborations over %d films", len(nodes), g.EdgeCount(), len(set.Films)))
	path, err := env.writeChart(s.ID(), opts, func(w io.Writer) error {
		return render.Network(w, nodes, links, networkLabels, opts)
	})
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		RowsIn:    env.Table.Len(),
		RowsOut:   g.EdgeCount(),
		Artifacts: []string{path},
		Summary:   fmt.Sprintf("%d nodes, %d edges", len(nodes), g.EdgeCount()),
	}

	rows := make([][]string, len(set.Edges))
	for i, e := range set.Edges {
		rows[i] = []string{e.A, e.B, e.Film}
	}
	if err := env.writeTable(outcome, s.ID(), []string{"Person_A", "Person_B", "Film"}, rows); err != nil {
		return nil, err
	}
	return outcome, nil
}

// GenreChordSection draws how often genres appear together
type GenreChordSection struct {
	BaseSection
}

// NewGenreChordSection creates the section
func NewGenreChordSection() *GenreChordSection {
	return &GenreChordSection{
		BaseSection: NewBaseSection(SectionGenreChord, "Genre co-occurrence"),
	}
}

// Execute implements Section
func (s *GenreChordSection) Execute(ctx context.Context, env *Environment) (*Outcome, error) {
	pairs, err := eda.GenrePairs(env.Table, eda.GenreOptions{
		Denylist:  env.Analysis.GenreDenylist,
		Threshold: env.Analysis.ChordThreshold,
	})
	if err != nil {
		return nil, err
	}
	if len(pairs.Kept) == 0 {
		return nil, apperrors.EmptySelection("genre pairs at threshold").
			WithDetail("threshold", env.Analysis.ChordThreshold)
	}

	used := make(map[string]bool)
	links := make([]render.Link, len(pairs.Kept))
	for i, pc := range pairs.Kept {
		used[pc.A] = true
		used[pc.B] = true
		links[i] = render.Link{From: pc.A, To: pc.B, Weight: float64(pc.Count)}
	}
	labels := make([]string, 0, len(used))
	for l := range used {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	opts := env.chartOptions("Genre co-occurrence",
		fmt.Sprintf("pairs shared by at least %d films", env.Analysis.ChordThreshold))
	path, err := env.writeChart(s.ID(), opts, func(w io.Writer) error {
		return render.Chord(w, labels, links, opts)
	})
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		RowsIn:    env.Table.Len(),
		RowsOut:   len(pairs.Kept),
		Artifacts: []string{path},
		Summary:   fmt.Sprintf("%d of %d genre pairs kept", len(pairs.Kept), len(pairs.All)),
	}

	rows := make([][]string, len(pairs.All))
	for i, pc := range pairs.All {
		kept := "false"
		if pc.Count >= env.Analysis.ChordThreshold {
			kept = "true"
		}
		rows[i] = []string{pc.A, pc.B, exporter.FormatInt(pc.Count), kept}
	}
	if err := env.writeTable(outcome, s.ID(), []string{"Genre_A", "Genre_B", "Films", "Kept"}, rows); err != nil {
		return nil, err
	}
	return outcome, nil
}
