package render

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/wcharczuk/go-chart/v2/drawing"

	apperrors "filmeda/internal/errors"
)

// Point3 is one point of a 3D scatter.
type Point3 struct {
	X, Y, Z float64
}

// Projection sets the camera and the box shape of a 3D scatter. Angles are
// in degrees; Aspect scales each normalised axis.
type Projection struct {
	Azimuth   float64
	Elevation float64
	Aspect    [3]float64
	Labels    [3]string
}

// DefaultProjection looks at the box from the front-right, slightly above.
func DefaultProjection() Projection {
	return Projection{Azimuth: -55, Elevation: 25, Aspect: [3]float64{1, 1, 0.5}}
}

// project maps a point in box space to view space: x right, y up, depth
// towards the viewer.
func (p Projection) project(x, y, z float64) (sx, sy, depth float64) {
	az := p.Azimuth * math.Pi / 180
	el := p.Elevation * math.Pi / 180
	rx := x*math.Cos(az) - y*math.Sin(az)
	ry := x*math.Sin(az) + y*math.Cos(az)
	sx = rx
	sy = z*math.Cos(el) + ry*math.Sin(el)
	depth = -ry*math.Cos(el) + z*math.Sin(el)
	return sx, sy, depth
}

// Scatter3D draws points in an orthographic projection of their bounding
// box. Each axis is normalised to [0, 1] then scaled by the aspect; colour
// follows the Z value on the viridis scale.
func Scatter3D(w io.Writer, points []Point3, proj Projection, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	if len(points) == 0 {
		return apperrors.EmptySelection("scatter points")
	}
	for _, a := range proj.Aspect {
		if a <= 0 {
			return apperrors.InvalidInput(fmt.Sprintf("aspect %v must be positive", proj.Aspect))
		}
	}

	var lo, hi [3]float64
	for k := 0; k < 3; k++ {
		lo[k], hi[k] = math.Inf(1), math.Inf(-1)
	}
	for _, p := range points {
		for k, v := range [3]float64{p.X, p.Y, p.Z} {
			lo[k] = math.Min(lo[k], v)
			hi[k] = math.Max(hi[k], v)
		}
	}
	norm := func(k int, v float64) float64 {
		if hi[k] == lo[k] {
			return 0.5 * proj.Aspect[k]
		}
		return (v - lo[k]) / (hi[k] - lo[k]) * proj.Aspect[k]
	}

	type placed struct {
		sx, sy, depth float64
		color         drawing.Color
	}
	all := make([]placed, len(points))
	for i, p := range points {
		sx, sy, d := proj.project(
			norm(0, p.X)-proj.Aspect[0]/2,
			norm(1, p.Y)-proj.Aspect[1]/2,
			norm(2, p.Z)-proj.Aspect[2]/2,
		)
		all[i] = placed{sx: sx, sy: sy, depth: d, color: Sequential(p.Z, lo[2], hi[2])}
	}

	// box corners
	var corners [8][3]float64
	for i := 0; i < 8; i++ {
		for k := 0; k < 3; k++ {
			if i&(1<<k) != 0 {
				corners[i][k] = proj.Aspect[k] / 2
			} else {
				corners[i][k] = -proj.Aspect[k] / 2
			}
		}
	}
	var screen [8][2]float64
	minX, maxX, minY, maxY := math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)
	for i, cn := range corners {
		sx, sy, _ := proj.project(cn[0], cn[1], cn[2])
		screen[i] = [2]float64{sx, sy}
		minX, maxX = math.Min(minX, sx), math.Max(maxX, sx)
		minY, maxY = math.Min(minY, sy), math.Max(maxY, sy)
	}

	return emit(w, opts, "3d scatter", func(out io.Writer) error {
		c, err := newCanvas(opts)
		if err != nil {
			return err
		}

		margin := 80.0
		scale := math.Min((float64(opts.Width)-2*margin)/(maxX-minX), (float64(opts.Height)-2*margin)/(maxY-minY))
		cx := float64(opts.Width)/2 - (minX+maxX)/2*scale
		cy := float64(opts.Height)/2 + (minY+maxY)/2*scale
		toScreen := func(sx, sy float64) (float64, float64) {
			return cx + sx*scale, cy - sy*scale
		}

		for i := 0; i < 8; i++ {
			for k := 0; k < 3; k++ {
				j := i | (1 << k)
				if j == i {
					continue
				}
				x1, y1 := toScreen(screen[i][0], screen[i][1])
				x2, y2 := toScreen(screen[j][0], screen[j][1])
				c.line(round(x1), round(y1), round(x2), round(y2), colorGrid, 1)
			}
		}

		// axis labels at the end of the three edges leaving corner 0
		for k := 0; k < 3; k++ {
			label := proj.Labels[k]
			if label == "" {
				continue
			}
			x, y := toScreen(screen[1<<k][0], screen[1<<k][1])
			c.text(fmt.Sprintf("%s (%s-%s)", label, compact(lo[k]), compact(hi[k])), round(x), round(y)+14, 10, colorLabel, alignCenter)
		}

		sort.SliceStable(all, func(i, j int) bool { return all[i].depth < all[j].depth })
		for _, p := range all {
			x, y := toScreen(p.sx, p.sy)
			c.dot(x, y, 3.5, p.color, p.color.WithAlpha(255))
		}

		return c.save(out)
	})
}
