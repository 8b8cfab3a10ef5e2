package graph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "filmeda/internal/errors"
)

func collaborationGraph(t *testing.T) *Multigraph {
	t.Helper()
	g := NewMultigraph()
	for _, e := range [][2]string{{"X", "Y"}, {"Y", "X"}, {"X", "Z"}, {"Y", "Z"}} {
		require.NoError(t, g.AddEdge(e[0], e[1]))
	}
	return g
}

func TestMultigraph(t *testing.T) {
	g := collaborationGraph(t)

	assert.Equal(t, []string{"X", "Y", "Z"}, g.Nodes())
	assert.Equal(t, 4, g.EdgeCount())
	assert.Equal(t, []Edge{{"X", "Y"}, {"X", "Y"}, {"X", "Z"}, {"Y", "Z"}}, g.Edges())

	assert.Equal(t, 2, g.Multiplicity("X", "Y"))
	assert.Equal(t, 2, g.Multiplicity("Y", "X"))
	assert.Equal(t, 1, g.Multiplicity("X", "Z"))
	assert.Equal(t, 0, g.Multiplicity("X", "W"))

	// degree counts distinct neighbours, not parallel edges
	assert.Equal(t, 2, g.Degree("X"))
	assert.Equal(t, 2, g.Degree("Z"))
	assert.Equal(t, 0, g.Degree("W"))
}

func TestMultigraph_RejectsSelfLoop(t *testing.T) {
	g := NewMultigraph()
	err := g.AddEdge("X", "X")
	assert.True(t, apperrors.IsInvalidInput(err))
	assert.Zero(t, g.EdgeCount())
	assert.Empty(t, g.Nodes())

	g.AddNode("Solo")
	assert.Equal(t, []string{"Solo"}, g.Nodes())
	assert.Zero(t, g.Degree("Solo"))
}

func TestSpringLayout(t *testing.T) {
	g := collaborationGraph(t)
	require.NoError(t, g.AddEdge("Z", "W"))

	opts := LayoutOptions{Iterations: 50, K: 0.15, Seed: 42}
	pos := SpringLayout(g, opts)
	require.Len(t, pos, 4)

	limit := 0.0
	for name, p := range pos {
		assert.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y), name)
		assert.LessOrEqual(t, math.Abs(p.X), 1.0+1e-9)
		assert.LessOrEqual(t, math.Abs(p.Y), 1.0+1e-9)
		limit = math.Max(limit, math.Max(math.Abs(p.X), math.Abs(p.Y)))
	}
	assert.InDelta(t, 1.0, limit, 1e-9)

	assert.Equal(t, pos, SpringLayout(g, opts), "fixed seed gives the same layout")
}

func TestSpringLayout_Small(t *testing.T) {
	assert.Empty(t, SpringLayout(NewMultigraph(), LayoutOptions{Iterations: 10}))

	g := NewMultigraph()
	g.AddNode("A")
	assert.Equal(t, map[string]Point{"A": {}}, SpringLayout(g, LayoutOptions{Iterations: 10}))
}
