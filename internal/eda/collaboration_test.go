package eda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "filmeda/internal/errors"
)

func TestCollaborationEdges(t *testing.T) {
	edges := CollaborationEdges([]FilmCast{
		{Title: "F1", Persons: []string{"X", "Y"}},
		{Title: "F2", Persons: []string{"X", "Y", "Z"}},
	})

	require.Len(t, edges, 4)
	counts := map[Pair]int{}
	for _, e := range edges {
		counts[e.Pair]++
	}
	assert.Equal(t, 2, counts[Pair{"X", "Y"}])
	assert.Equal(t, 1, counts[Pair{"X", "Z"}])
	assert.Equal(t, 1, counts[Pair{"Y", "Z"}])
}

func TestCollaborations(t *testing.T) {
	tbl := newTable(t,
		[]string{"F1", "F2", "F3", "Solo", "Pair Once"},
		// X wrote and directed F1, which counts once.
		col("Director_X", 1, 1, 0, 0, 0),
		col("Writer_X", 1, 0, 0, 0, 0),
		col("Writer_Y", 1, 1, 0, 0, 0),
		col("Writer_Z", 0, 1, 1, 0, 0),
		col("Director_Unknown", 0, 0, 1, 0, 1),
		col("Director_Lone", 0, 0, 0, 1, 0),
		col("Writer_Once", 0, 0, 0, 0, 1),
	)

	set, err := Collaborations(tbl, CollaborationOptions{})
	require.NoError(t, err)

	// Lone only has a single-person film, Once appears once, Unknown is dropped.
	assert.Equal(t, []string{"X", "Y", "Z"}, set.Persons)
	assert.Equal(t, []FilmCast{
		{Title: "F1", Persons: []string{"X", "Y"}},
		{Title: "F2", Persons: []string{"X", "Y", "Z"}},
		{Title: "F3", Persons: []string{"Z"}},
	}, set.Films)

	assert.Len(t, set.Edges, 4)
	assert.Equal(t, Edge{Pair: Pair{"X", "Y"}, Film: "F1"}, set.Edges[0])

	again, err := Collaborations(tbl, CollaborationOptions{Unknown: "Unknown"})
	require.NoError(t, err)
	assert.Equal(t, set, again)
}

func TestCollaborations_PlaceholderOnlyPartner(t *testing.T) {
	tbl := newTable(t,
		[]string{"F1", "F2", "F3", "F4"},
		col("Writer_X", 1, 1, 0, 0),
		col("Writer_Y", 1, 1, 0, 0),
		col("Writer_P", 0, 0, 1, 1),
		col("Director_Unknown", 0, 0, 1, 1),
	)

	set, err := Collaborations(tbl, CollaborationOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"X", "Y"}, set.Persons)
	assert.Equal(t, []FilmCast{
		{Title: "F1", Persons: []string{"X", "Y"}},
		{Title: "F2", Persons: []string{"X", "Y"}},
	}, set.Films)
	require.Len(t, set.Edges, 2)
	for _, e := range set.Edges {
		assert.NotContains(t, []string{e.A, e.B}, "P")
	}
}

func TestCollaborations_NoPeople(t *testing.T) {
	tbl := newTable(t, []string{"F1"}, col("Genre_Drama", 1))
	_, err := Collaborations(tbl, CollaborationOptions{})
	assert.True(t, apperrors.IsEmptySelection(err))
}
