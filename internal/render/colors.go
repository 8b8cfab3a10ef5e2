package render

import (
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	colorNaN   = drawing.Color{R: 200, G: 200, B: 200, A: 255}
	colorGrid  = drawing.Color{R: 220, G: 220, B: 220, A: 255}
	colorAxis  = drawing.Color{R: 90, G: 90, B: 90, A: 255}
	colorLabel = drawing.Color{R: 40, G: 40, B: 40, A: 255}

	divergingLow  = drawing.Color{R: 59, G: 76, B: 192, A: 255}
	divergingMid  = drawing.Color{R: 247, G: 247, B: 247, A: 255}
	divergingHigh = drawing.Color{R: 180, G: 4, B: 38, A: 255}
)

// palette holds the categorical series colours.
var palette = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"),
	drawing.ColorFromHex("8c564b"),
	drawing.ColorFromHex("e377c2"),
	drawing.ColorFromHex("7f7f7f"),
	drawing.ColorFromHex("bcbd22"),
	drawing.ColorFromHex("17becf"),
}

func paletteColor(i int) drawing.Color {
	return palette[i%len(palette)]
}

// Diverging maps v in [-1, 1] to a blue-white-red scale centred at zero.
// NaN maps to grey; values outside the range are clamped.
func Diverging(v float64) drawing.Color {
	if math.IsNaN(v) {
		return colorNaN
	}
	v = math.Max(-1, math.Min(1, v))
	if v < 0 {
		return lerp(divergingMid, divergingLow, -v)
	}
	return lerp(divergingMid, divergingHigh, v)
}

// Sequential maps v within [min, max] onto the viridis scale.
func Sequential(v, min, max float64) drawing.Color {
	if max <= min {
		return chart.Viridis(0.5, 0, 1)
	}
	return chart.Viridis(v, min, max)
}

func lerp(a, b drawing.Color, t float64) drawing.Color {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return drawing.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

// contrastText picks black or white text for a background.
func contrastText(bg drawing.Color) drawing.Color {
	lum := 0.299*float64(bg.R) + 0.587*float64(bg.G) + 0.114*float64(bg.B)
	if lum < 128 {
		return drawing.ColorWhite
	}
	return drawing.ColorBlack
}
