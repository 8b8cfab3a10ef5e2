// Package graph builds the collaboration network: an undirected multigraph
// keyed by person name, and a force-directed layout for drawing it.
package graph

import (
	"fmt"
	"sort"

	gonum "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/multi"

	apperrors "filmeda/internal/errors"
)

// Edge is one undirected edge between two named nodes, A < B.
type Edge struct {
	A, B string
}

// Multigraph is an undirected graph that keeps parallel edges.
type Multigraph struct {
	g     *multi.UndirectedGraph
	ids   map[string]int64
	edges []Edge
}

// NewMultigraph creates an empty graph.
func NewMultigraph() *Multigraph {
	return &Multigraph{
		g:   multi.NewUndirectedGraph(),
		ids: make(map[string]int64),
	}
}

// AddNode adds a node if it is not present.
func (m *Multigraph) AddNode(name string) {
	m.node(name)
}

// AddEdge adds one more edge between a and b. Self-loops are rejected.
func (m *Multigraph) AddEdge(a, b string) error {
	if a == b {
		return apperrors.InvalidInput(fmt.Sprintf("self-loop on %q", a))
	}
	if b < a {
		a, b = b, a
	}
	u, v := m.node(a), m.node(b)
	m.g.SetLine(m.g.NewLine(u, v))
	m.edges = append(m.edges, Edge{A: a, B: b})
	return nil
}

// Nodes returns the node names sorted.
func (m *Multigraph) Nodes() []string {
	names := make([]string, 0, len(m.ids))
	for name := range m.ids {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Edges returns every edge in insertion order, parallel edges included.
func (m *Multigraph) Edges() []Edge {
	out := make([]Edge, len(m.edges))
	copy(out, m.edges)
	return out
}

// EdgeCount returns the number of edges, parallel edges included.
func (m *Multigraph) EdgeCount() int { return len(m.edges) }

// Degree returns the number of distinct neighbours of a node.
func (m *Multigraph) Degree(name string) int {
	id, ok := m.ids[name]
	if !ok {
		return 0
	}
	return count(m.g.From(id))
}

// Multiplicity returns how many parallel edges join a and b.
func (m *Multigraph) Multiplicity(a, b string) int {
	u, ok := m.ids[a]
	if !ok {
		return 0
	}
	v, ok := m.ids[b]
	if !ok {
		return 0
	}
	lines := m.g.LinesBetween(u, v)
	n := 0
	for lines.Next() {
		n++
	}
	return n
}

func (m *Multigraph) node(name string) gonum.Node {
	if id, ok := m.ids[name]; ok {
		return m.g.Node(id)
	}
	n := m.g.NewNode()
	m.g.AddNode(n)
	m.ids[name] = n.ID()
	return n
}

func count(it gonum.Nodes) int {
	n := 0
	for it.Next() {
		n++
	}
	return n
}
