package render

import (
	"fmt"
	"io"
	"math"

	apperrors "filmeda/internal/errors"
)

// Chord places labels on a circle and joins linked pairs with curves bent
// through the centre. Stroke width is proportional to the link weight.
func Chord(w io.Writer, labels []string, links []Link, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	if len(labels) == 0 {
		return apperrors.EmptySelection("chord labels")
	}
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}
	maxWeight := 0.0
	for _, l := range links {
		if _, ok := index[l.From]; !ok {
			return apperrors.InvalidInput(fmt.Sprintf("link references unknown label %q", l.From))
		}
		if _, ok := index[l.To]; !ok {
			return apperrors.InvalidInput(fmt.Sprintf("link references unknown label %q", l.To))
		}
		if l.Weight < 0 {
			return apperrors.InvalidInput(fmt.Sprintf("link %s-%s has negative weight", l.From, l.To))
		}
		maxWeight = math.Max(maxWeight, l.Weight)
	}

	return emit(w, opts, "chord", func(out io.Writer) error {
		c, err := newCanvas(opts)
		if err != nil {
			return err
		}
		n := len(labels)
		cx, cy := float64(opts.Width)/2, float64(opts.Height)/2+10
		radius := math.Min(float64(opts.Width), float64(opts.Height))/2 - 110
		slice := 2 * math.Pi / float64(n)
		gap := slice * 0.1
		angleOf := func(i int) float64 { return -math.Pi/2 + slice*(float64(i)+0.5) }
		pointAt := func(a, r float64) (float64, float64) {
			return cx + r*math.Cos(a), cy + r*math.Sin(a)
		}

		for i := range labels {
			start := -math.Pi/2 + slice*float64(i) + gap/2
			end := start + slice - gap
			var pts [][2]float64
			for s := 0; s <= 24; s++ {
				a := start + (end-start)*float64(s)/24
				x, y := pointAt(a, radius+6)
				pts = append(pts, [2]float64{x, y})
			}
			c.polyline(pts, paletteColor(i), 10)
		}

		for _, l := range links {
			if l.Weight == 0 {
				continue
			}
			i, j := index[l.From], index[l.To]
			x1, y1 := pointAt(angleOf(i), radius)
			x2, y2 := pointAt(angleOf(j), radius)
			width := 1 + 11*l.Weight/maxWeight
			c.curve(round(x1), round(y1), round(cx), round(cy), round(x2), round(y2), paletteColor(i).WithAlpha(120), width)
		}

		for i, label := range labels {
			a := angleOf(i)
			x, y := pointAt(a, radius+18)
			switch {
			case math.Cos(a) < -0.2:
				c.text(label, round(x), round(y)+4, 10, colorLabel, alignRight)
			case math.Cos(a) > 0.2:
				c.text(label, round(x), round(y)+4, 10, colorLabel, alignLeft)
			default:
				c.text(label, round(x), round(y)+4, 10, colorLabel, alignCenter)
			}
		}
		return c.save(out)
	})
}
