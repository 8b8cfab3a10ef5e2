package render

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	apperrors "filmeda/internal/errors"
)

// minAnnotatedCell is the smallest cell, in pixels, that still gets its value
// written inside it.
const minAnnotatedCell = 18

// Heatmap draws an annotated square matrix with a diverging scale centred
// at zero. NaN cells are grey and labelled "nan". Cells too small to hold a
// value are drawn without one and a warning is logged.
func Heatmap(w io.Writer, labels []string, values [][]float64, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	n := len(labels)
	if n == 0 {
		return apperrors.EmptySelection("heatmap cells")
	}
	if len(values) != n {
		return apperrors.InvalidInput(fmt.Sprintf("heatmap has %d rows for %d labels", len(values), n))
	}
	for i, row := range values {
		if len(row) != n {
			return apperrors.InvalidInput(fmt.Sprintf("heatmap row %d has %d cells, want %d", i, len(row), n))
		}
	}

	return emit(w, opts, "heatmap", func(out io.Writer) error {
		c, err := newCanvas(opts)
		if err != nil {
			return err
		}

		labelSize := 9.0
		if n > 30 {
			labelSize = 7
		}
		labelWidth := 0
		for _, l := range labels {
			if lw := c.measure(l, labelSize); lw > labelWidth {
				labelWidth = lw
			}
		}

		const colorBar = 70
		left := labelWidth + 16
		top := 48
		bottom := labelWidth + 16
		avail := math.Min(float64(opts.Width-left-colorBar-16), float64(opts.Height-top-bottom))
		cell := int(avail) / n
		if cell < 2 {
			return apperrors.InvalidInput(fmt.Sprintf("%d categories do not fit in %dx%d", n, opts.Width, opts.Height))
		}

		annotate := cell >= minAnnotatedCell
		if !annotate {
			slog.Warn("Heatmap values not annotated",
				slog.Int("categories", n),
				slog.Int("cell_px", cell),
				slog.Int("min_cell_px", minAnnotatedCell),
				slog.Int("width", opts.Width),
				slog.Int("height", opts.Height))
		}
		valueSize := math.Min(10, float64(cell)/3)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				v := values[i][j]
				bg := Diverging(v)
				x, y := left+j*cell, top+i*cell
				c.rect(x, y, cell, cell, bg)
				if !annotate {
					continue
				}
				body := fmt.Sprintf("%.2f", v)
				if math.IsNaN(v) {
					body = "nan"
				}
				c.text(body, x+cell/2, y+cell/2+int(valueSize/2), valueSize, contrastText(bg), alignCenter)
			}
		}

		for i, l := range labels {
			c.text(l, left-6, top+i*cell+cell/2+int(labelSize/2), labelSize, colorLabel, alignRight)
			c.rotatedText(l, left+i*cell+cell/2+int(labelSize/2), top+n*cell+8, labelSize, math.Pi/2, colorLabel)
		}

		// colour bar
		barX := left + n*cell + 24
		barH := n * cell
		steps := 100
		for s := 0; s < steps; s++ {
			v := 1 - 2*float64(s)/float64(steps-1)
			y0 := top + s*barH/steps
			y1 := top + (s+1)*barH/steps
			c.rect(barX, y0, 18, y1-y0+1, Diverging(v))
		}
		for _, tick := range []float64{1, 0.5, 0, -0.5, -1} {
			y := top + int(float64(barH)*(1-tick)/2)
			c.line(barX+18, y, barX+22, y, colorAxis, 1)
			c.text(fmt.Sprintf("%.1f", tick), barX+25, y+4, 9, colorLabel, alignLeft)
		}

		return c.save(out)
	})
}
