package render

import (
	"fmt"
	"io"
	"math"
	"sort"

	apperrors "filmeda/internal/errors"
)

// NetworkNode is a positioned node; X and Y lie in [-1, 1].
type NetworkNode struct {
	Name   string
	X, Y   float64
	Degree int
}

// Link joins two named nodes. Weight is used by the chord diagram.
type Link struct {
	From, To string
	Weight   float64
}

// Network draws edges as straight lines under nodes sized and coloured by
// degree. The best connected nodes are labelled.
func Network(w io.Writer, nodes []NetworkNode, links []Link, labelTop int, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	if len(nodes) == 0 {
		return apperrors.EmptySelection("network nodes")
	}
	index := make(map[string]int, len(nodes))
	minDeg, maxDeg := math.Inf(1), math.Inf(-1)
	for i, n := range nodes {
		index[n.Name] = i
		minDeg = math.Min(minDeg, float64(n.Degree))
		maxDeg = math.Max(maxDeg, float64(n.Degree))
	}
	for _, l := range links {
		if _, ok := index[l.From]; !ok {
			return apperrors.InvalidInput(fmt.Sprintf("link references unknown node %q", l.From))
		}
		if _, ok := index[l.To]; !ok {
			return apperrors.InvalidInput(fmt.Sprintf("link references unknown node %q", l.To))
		}
	}

	return emit(w, opts, "network", func(out io.Writer) error {
		c, err := newCanvas(opts)
		if err != nil {
			return err
		}
		margin := 60.0
		half := math.Min(float64(opts.Width), float64(opts.Height))/2 - margin
		cx, cy := float64(opts.Width)/2, float64(opts.Height)/2+10
		at := func(n NetworkNode) (float64, float64) {
			return cx + n.X*half, cy - n.Y*half
		}

		edge := colorAxis.WithAlpha(70)
		for _, l := range links {
			x1, y1 := at(nodes[index[l.From]])
			x2, y2 := at(nodes[index[l.To]])
			c.line(round(x1), round(y1), round(x2), round(y2), edge, 0.8)
		}

		order := make([]int, len(nodes))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			na, nb := nodes[order[a]], nodes[order[b]]
			if na.Degree != nb.Degree {
				return na.Degree < nb.Degree
			}
			return na.Name < nb.Name
		})
		for _, i := range order {
			n := nodes[i]
			x, y := at(n)
			col := Sequential(float64(n.Degree), minDeg, maxDeg)
			c.dot(x, y, nodeRadius(n.Degree, minDeg, maxDeg), col, col)
		}

		// labels for the best connected nodes, drawn last
		for k := 0; k < labelTop && k < len(order); k++ {
			n := nodes[order[len(order)-1-k]]
			x, y := at(n)
			r := nodeRadius(n.Degree, minDeg, maxDeg)
			c.text(n.Name, round(x), round(y-r-3), 8, colorLabel, alignCenter)
		}

		c.text(fmt.Sprintf("%d nodes, %d edges, degree %.0f-%.0f", len(nodes), len(links), minDeg, maxDeg),
			opts.Width-12, opts.Height-12, 9, colorLabel, alignRight)
		return c.save(out)
	})
}

func nodeRadius(degree int, minDeg, maxDeg float64) float64 {
	if maxDeg <= minDeg {
		return 5
	}
	return 3 + 9*(float64(degree)-minDeg)/(maxDeg-minDeg)
}
