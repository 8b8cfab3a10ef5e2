package render

import (
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"

	apperrors "filmeda/internal/errors"
)

// Series is one named group of points.
type Series struct {
	Name string
	X    []float64
	Y    []float64
}

// Axes names the two axes of a chart.
type Axes struct {
	X, Y string
}

// CategoryScatter draws one point-only series per category with a legend.
func CategoryScatter(w io.Writer, series []Series, axes Axes, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	total := 0
	for _, s := range series {
		if len(s.X) != len(s.Y) {
			return apperrors.InvalidInput(fmt.Sprintf("series %q has %d x and %d y values", s.Name, len(s.X), len(s.Y)))
		}
		total += len(s.X)
	}
	if total == 0 {
		return apperrors.EmptySelection("scatter points")
	}

	xr := dataRange(series, func(s Series) []float64 { return s.X })
	yr := dataRange(series, func(s Series) []float64 { return s.Y })

	var cs []chart.Series
	for i, s := range series {
		if len(s.X) == 0 {
			continue
		}
		col := paletteColor(i)
		cs = append(cs, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: s.X,
			YValues: s.Y,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    4,
				DotColor:    col.WithAlpha(190),
			},
		})
	}

	ch := chart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:           axes.X,
			Range:          xr,
			ValueFormatter: compactFormatter,
		},
		YAxis: chart.YAxis{
			Name:           axes.Y,
			Range:          yr,
			ValueFormatter: compactFormatter,
		},
		Series: cs,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return emit(w, opts, "category scatter", func(out io.Writer) error {
		return ch.Render(opts.provider(), out)
	})
}

func compactFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return compact(f)
	}
	return fmt.Sprintf("%v", v)
}

// dataRange spans every value with a 5% margin, never collapsing to zero width.
func dataRange(series []Series, pick func(Series) []float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range pick(s) {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if hi == lo {
		pad := math.Max(math.Abs(lo)*0.1, 1)
		return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
	}
	pad := (hi - lo) * 0.05
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
