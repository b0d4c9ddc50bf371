// Package view holds the parts of the viewer that do not need a window:
// color ramps, the message log, text fields and slider math.
package view

import (
	"image/color"
	"math"
)

// viridis control points, evenly spaced over [0, 1]
var viridis = []color.RGBA{
	{68, 1, 84, 255},
	{71, 44, 122, 255},
	{59, 81, 139, 255},
	{44, 113, 142, 255},
	{33, 144, 141, 255},
	{39, 173, 129, 255},
	{92, 200, 99, 255},
	{170, 220, 50, 255},
	{253, 231, 37, 255},
}

// Unreachable is the color of vertices without a finite distance
var Unreachable = color.RGBA{110, 110, 110, 255}

// Viridis maps t in [0, 1] onto the viridis ramp. Values outside are
// clamped; NaN maps to the Unreachable color.
func Viridis(t float64) color.RGBA {
	if math.IsNaN(t) {
		return Unreachable
	}
	t = math.Max(0, math.Min(1, t))

	pos := t * float64(len(viridis)-1)
	i := int(pos)
	if i >= len(viridis)-1 {
		return viridis[len(viridis)-1]
	}
	return lerpColor(viridis[i], viridis[i+1], pos-float64(i))
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 255}
}

// Shade scales the color channels by intensity, keeping alpha
func Shade(c color.RGBA, intensity float64) color.RGBA {
	intensity = math.Max(0, math.Min(1, intensity))
	return color.RGBA{
		R: uint8(float64(c.R) * intensity),
		G: uint8(float64(c.G) * intensity),
		B: uint8(float64(c.B) * intensity),
		A: c.A,
	}
}

// ScalarColors colors every value of a normalized field. Negative values
// mark unreachable entries.
func ScalarColors(normalized []float64) []color.RGBA {
	out := make([]color.RGBA, len(normalized))
	for i, v := range normalized {
		if v < 0 {
			out[i] = Unreachable
			continue
		}
		out[i] = Viridis(v)
	}
	return out
}
