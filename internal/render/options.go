package render

import (
	"bytes"
	"fmt"
	"image/png"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"

	apperrors "filmeda/internal/errors"
)

// Output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// Options controls the artifact format and size.
type Options struct {
	Format  string
	Width   int
	Height  int
	Title   string
	Caption string
}

// DefaultOptions returns a 1200x900 PNG.
func DefaultOptions() Options {
	return Options{Format: FormatPNG, Width: 1200, Height: 900}
}

// Extension returns the file extension for the format, without the dot.
func (o Options) Extension() string {
	if o.Format == FormatSVG {
		return FormatSVG
	}
	return FormatPNG
}

func (o Options) validate() error {
	if o.Format != FormatPNG && o.Format != FormatSVG {
		return apperrors.InvalidInput(fmt.Sprintf("unsupported format %q", o.Format))
	}
	if o.Width < 100 || o.Height < 100 {
		return apperrors.InvalidInput(fmt.Sprintf("chart size %dx%d too small", o.Width, o.Height))
	}
	return nil
}

func (o Options) provider() chart.RendererProvider {
	if o.Format == FormatSVG {
		return chart.SVG
	}
	return chart.PNG
}

// emit runs draw against w, stamping the caption on PNG output.
func emit(w io.Writer, opts Options, name string, draw func(io.Writer) error) error {
	if opts.Format != FormatPNG || opts.Caption == "" {
		if err := draw(w); err != nil {
			return apperrors.RenderFailed(name, err)
		}
		return nil
	}

	var buf bytes.Buffer
	if err := draw(&buf); err != nil {
		return apperrors.RenderFailed(name, err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return apperrors.RenderFailed(name, fmt.Errorf("failed to decode chart: %w", err))
	}
	if err := png.Encode(w, StampCaption(img, opts.Caption)); err != nil {
		return apperrors.RenderFailed(name, fmt.Errorf("failed to encode chart: %w", err))
	}
	return nil
}
