package render

import (
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// canvas wraps a go-chart Renderer with the primitives the hand drawn
// charts need. Coordinates are pixels from the top-left corner.
type canvas struct {
	r      chart.Renderer
	width  int
	height int
}

func newCanvas(opts Options) (*canvas, error) {
	r, err := opts.provider()(opts.Width, opts.Height)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	f, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	r.SetFont(f)

	c := &canvas{r: r, width: opts.Width, height: opts.Height}
	c.rect(0, 0, opts.Width, opts.Height, drawing.ColorWhite)
	if opts.Title != "" {
		c.text(opts.Title, opts.Width/2, 28, 16, drawing.ColorBlack, alignCenter)
	}
	return c, nil
}

func (c *canvas) save(w io.Writer) error {
	return c.r.Save(w)
}

func (c *canvas) rect(x, y, w, h int, fill drawing.Color) {
	c.r.SetFillColor(fill)
	c.r.SetStrokeColor(fill)
	c.r.SetStrokeWidth(0)
	c.r.MoveTo(x, y)
	c.r.LineTo(x+w, y)
	c.r.LineTo(x+w, y+h)
	c.r.LineTo(x, y+h)
	c.r.LineTo(x, y)
	c.r.Close()
	c.r.Fill()
}

func (c *canvas) line(x1, y1, x2, y2 int, stroke drawing.Color, width float64) {
	c.r.SetStrokeColor(stroke)
	c.r.SetStrokeWidth(width)
	c.r.MoveTo(x1, y1)
	c.r.LineTo(x2, y2)
	c.r.Stroke()
}

// polyline strokes a path through pts.
func (c *canvas) polyline(pts [][2]float64, stroke drawing.Color, width float64) {
	if len(pts) < 2 {
		return
	}
	c.r.SetStrokeColor(stroke)
	c.r.SetStrokeWidth(width)
	c.r.MoveTo(round(pts[0][0]), round(pts[0][1]))
	for _, p := range pts[1:] {
		c.r.LineTo(round(p[0]), round(p[1]))
	}
	c.r.Stroke()
}

// curve strokes a quadratic curve from (x1,y1) to (x2,y2) bent towards (cx,cy).
func (c *canvas) curve(x1, y1, cx, cy, x2, y2 int, stroke drawing.Color, width float64) {
	c.r.SetStrokeColor(stroke)
	c.r.SetStrokeWidth(width)
	c.r.MoveTo(x1, y1)
	c.r.QuadCurveTo(cx, cy, x2, y2)
	c.r.Stroke()
}

// dot fills a circle drawn as a polygon.
func (c *canvas) dot(x, y, radius float64, fill, stroke drawing.Color) {
	const segments = 20
	c.r.SetFillColor(fill)
	c.r.SetStrokeColor(stroke)
	c.r.SetStrokeWidth(1)
	c.r.MoveTo(round(x+radius), round(y))
	for i := 1; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		c.r.LineTo(round(x+radius*math.Cos(a)), round(y+radius*math.Sin(a)))
	}
	c.r.Close()
	c.r.FillStroke()
}

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

// text draws body with its baseline at y.
func (c *canvas) text(body string, x, y int, size float64, col drawing.Color, a align) {
	c.r.SetFontSize(size)
	c.r.SetFontColor(col)
	switch a {
	case alignCenter:
		x -= c.r.MeasureText(body).Width() / 2
	case alignRight:
		x -= c.r.MeasureText(body).Width()
	}
	c.r.Text(body, x, y)
}

// rotatedText draws body rotated by radians around its start point.
func (c *canvas) rotatedText(body string, x, y int, size, radians float64, col drawing.Color) {
	c.r.SetFontSize(size)
	c.r.SetFontColor(col)
	c.r.SetTextRotation(radians)
	c.r.Text(body, x, y)
	c.r.ClearTextRotation()
}

func (c *canvas) measure(body string, size float64) int {
	c.r.SetFontSize(size)
	return c.r.MeasureText(body).Width()
}

func round(v float64) int {
	return int(math.Round(v))
}
