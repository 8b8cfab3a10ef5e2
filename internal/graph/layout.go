package graph

import (
	"math"
	"math/rand"
)

// Point is a 2D position.
type Point struct {
	X, Y float64
}

// LayoutOptions configures SpringLayout.
type LayoutOptions struct {
	Iterations int
	// K is the optimal distance between nodes; 0 means 1/sqrt(n).
	K    float64
	Seed int64
}

const minDistance = 0.01

// SpringLayout places nodes with the Fruchterman-Reingold force model.
// Attraction along an edge is scaled by its multiplicity. Initial positions
// are drawn from a generator seeded with opts.Seed, the temperature cools
// linearly, and the result is centred and scaled into [-1, 1].
func SpringLayout(m *Multigraph, opts LayoutOptions) map[string]Point {
	nodes := m.Nodes()
	n := len(nodes)
	out := make(map[string]Point, n)
	switch n {
	case 0:
		return out
	case 1:
		out[nodes[0]] = Point{}
		return out
	}

	index := make(map[string]int, n)
	for i, name := range nodes {
		index[name] = i
	}
	weight := make([][]float64, n)
	for i := range weight {
		weight[i] = make([]float64, n)
	}
	for _, e := range m.edges {
		i, j := index[e.A], index[e.B]
		weight[i][j]++
		weight[j][i]++
	}

	k := opts.K
	if k <= 0 {
		k = math.Sqrt(1.0 / float64(n))
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	pos := make([]Point, n)
	for i := range pos {
		pos[i] = Point{X: rng.Float64(), Y: rng.Float64()}
	}

	temp := 0.1 * span(pos)
	dt := temp / float64(opts.Iterations+1)
	disp := make([]Point, n)
	for iter := 0; iter < opts.Iterations; iter++ {
		for i := 0; i < n; i++ {
			var dx, dy float64
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				ddx := pos[i].X - pos[j].X
				ddy := pos[i].Y - pos[j].Y
				d := math.Max(math.Hypot(ddx, ddy), minDistance)
				f := k*k/(d*d) - weight[i][j]*d/k
				dx += ddx * f
				dy += ddy * f
			}
			disp[i] = Point{X: dx, Y: dy}
		}
		for i := 0; i < n; i++ {
			length := math.Max(math.Hypot(disp[i].X, disp[i].Y), minDistance)
			pos[i].X += disp[i].X * temp / length
			pos[i].Y += disp[i].Y * temp / length
		}
		temp -= dt
	}

	rescale(pos)
	for i, name := range nodes {
		out[name] = pos[i]
	}
	return out
}

// span returns the largest extent of the positions along either axis.
func span(pos []Point) float64 {
	minX, maxX := pos[0].X, pos[0].X
	minY, maxY := pos[0].Y, pos[0].Y
	for _, p := range pos[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return math.Max(maxX-minX, maxY-minY)
}

// rescale centres the positions on the origin and scales the largest
// coordinate to 1.
func rescale(pos []Point) {
	var cx, cy float64
	for _, p := range pos {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(pos))
	cy /= float64(len(pos))

	limit := 0.0
	for i := range pos {
		pos[i].X -= cx
		pos[i].Y -= cy
		limit = math.Max(limit, math.Max(math.Abs(pos[i].X), math.Abs(pos[i].Y)))
	}
	if limit == 0 {
		return
	}
	for i := range pos {
		pos[i].X /= limit
		pos[i].Y /= limit
	}
}
