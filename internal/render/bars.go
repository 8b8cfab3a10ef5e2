package render

import (
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"

	apperrors "filmeda/internal/errors"
)

// BarGroup is one label with one value per series.
type BarGroup struct {
	Label  string
	Values []float64
}

// GroupedBars draws interleaved bars, one per series inside each group.
func GroupedBars(w io.Writer, groups []BarGroup, seriesNames []string, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	if len(groups) == 0 || len(seriesNames) == 0 {
		return apperrors.EmptySelection("bar groups")
	}

	maxValue := 0.0
	var bars []chart.Value
	for _, g := range groups {
		if len(g.Values) != len(seriesNames) {
			return apperrors.InvalidInput(fmt.Sprintf("group %q has %d values for %d series", g.Label, len(g.Values), len(seriesNames)))
		}
		for s, v := range g.Values {
			label := ""
			if s == 0 {
				label = g.Label
			}
			col := paletteColor(s)
			bars = append(bars, chart.Value{
				Value: v,
				Label: label,
				Style: chart.Style{FillColor: col, StrokeColor: col, StrokeWidth: 1},
			})
			maxValue = math.Max(maxValue, v)
		}
	}

	plotWidth := opts.Width - 120
	slot := plotWidth / len(bars)
	barWidth := int(math.Max(2, float64(slot)*0.75))
	spacing := int(math.Max(1, float64(slot)-float64(barWidth)))

	bc := chart.BarChart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		BarWidth:   barWidth,
		BarSpacing: spacing,
		Background: chart.Style{Padding: chart.Box{Top: 60, Left: 10, Right: 10, Bottom: 10}},
		XAxis:      chart.Style{TextRotationDegrees: 45, FontSize: 8},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: niceMax(maxValue * 1.05)},
			ValueFormatter: compactFormatter,
		},
		Bars:     bars,
		Elements: []chart.Renderable{barLegend(seriesNames)},
	}

	return emit(w, opts, "grouped bars", func(out io.Writer) error {
		return bc.Render(opts.provider(), out)
	})
}

// barLegend draws colour swatches along the top right of the canvas.
func barLegend(names []string) chart.Renderable {
	return func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
		r.SetFontSize(10)
		r.SetFontColor(colorLabel)
		x := cb.Right - 10
		y := cb.Top - 40
		for i := len(names) - 1; i >= 0; i-- {
			tw := r.MeasureText(names[i]).Width()
			x -= tw
			r.Text(names[i], x, y+10)
			x -= 16
			col := paletteColor(i)
			r.SetFillColor(col)
			r.SetStrokeColor(col)
			r.SetStrokeWidth(1)
			r.MoveTo(x, y)
			r.LineTo(x+12, y)
			r.LineTo(x+12, y+12)
			r.LineTo(x, y+12)
			r.Close()
			r.FillStroke()
			x -= 14
		}
	}
}

// DayBar is one value on a day of year.
type DayBar struct {
	Day   int
	Value float64
}

var monthStarts = []struct {
	day   int
	label string
}{
	{1, "Jan"}, {32, "Feb"}, {60, "Mar"}, {91, "Apr"}, {121, "May"}, {152, "Jun"},
	{182, "Jul"}, {213, "Aug"}, {244, "Sep"}, {274, "Oct"}, {305, "Nov"}, {335, "Dec"},
}

// DayBars draws one bar per value on a 1-366 day axis, with no binning.
// Bars on the same day overlap.
func DayBars(w io.Writer, bars []DayBar, axes Axes, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	if len(bars) == 0 {
		return apperrors.EmptySelection("day bars")
	}
	maxValue := 0.0
	for _, b := range bars {
		if b.Day < 1 || b.Day > 366 {
			return apperrors.InvalidInput(fmt.Sprintf("day %d out of range", b.Day))
		}
		maxValue = math.Max(maxValue, b.Value)
	}
	top := niceMax(maxValue)

	return emit(w, opts, "day bars", func(out io.Writer) error {
		c, err := newCanvas(opts)
		if err != nil {
			return err
		}
		left, right, upper, lower := 80, 20, 50, 60
		plotW := opts.Width - left - right
		plotH := opts.Height - upper - lower
		base := upper + plotH
		xOf := func(day float64) int { return left + int(float64(plotW)*(day-1)/366) }
		barW := int(math.Max(1, float64(plotW)/366))

		for i := 0; i <= 5; i++ {
			v := top * float64(i) / 5
			y := base - int(float64(plotH)*v/top)
			c.line(left, y, left+plotW, y, colorGrid, 1)
			c.text(compact(v), left-6, y+4, 9, colorLabel, alignRight)
		}
		for _, m := range monthStarts {
			x := xOf(float64(m.day))
			c.line(x, base, x, base+5, colorAxis, 1)
			c.text(m.label, x+plotW/24, base+18, 9, colorLabel, alignCenter)
		}

		bar := paletteColor(0)
		for _, b := range bars {
			h := int(float64(plotH) * math.Max(0, b.Value) / top)
			if h == 0 {
				continue
			}
			c.rect(xOf(float64(b.Day)), base-h, barW, h, bar)
		}
		c.line(left, base, left+plotW, base, colorAxis, 1)
		c.line(left, upper, left, base, colorAxis, 1)

		if axes.X != "" {
			c.text(axes.X, left+plotW/2, opts.Height-18, 11, colorLabel, alignCenter)
		}
		if axes.Y != "" {
			c.rotatedText(axes.Y, 18, upper+plotH/2+c.measure(axes.Y, 11)/2, 11, -math.Pi/2, colorLabel)
		}
		return c.save(out)
	})
}
