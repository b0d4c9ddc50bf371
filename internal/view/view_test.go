package view

import (
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/philipparndt/geoplane/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViridisEnds(t *testing.T) {
	assert.Equal(t, color.RGBA{68, 1, 84, 255}, Viridis(0))
	assert.Equal(t, color.RGBA{253, 231, 37, 255}, Viridis(1))
	assert.Equal(t, Viridis(0), Viridis(-3), "values below the range clamp")
	assert.Equal(t, Viridis(1), Viridis(7), "values above the range clamp")
	assert.Equal(t, Unreachable, Viridis(math.NaN()))
}

func TestViridisMidpoint(t *testing.T) {
	// 0.5 falls exactly on the middle control point
	assert.Equal(t, color.RGBA{33, 144, 141, 255}, Viridis(0.5))

	// Between two control points channels move monotonically
	a, b := Viridis(0.5), Viridis(0.5625)
	assert.LessOrEqual(t, a.R, b.R)
	assert.LessOrEqual(t, a.G, b.G)
}

func TestScalarColors(t *testing.T) {
	colors := ScalarColors([]float64{0, 1, -1})
	require.Len(t, colors, 3)
	assert.Equal(t, Viridis(0), colors[0])
	assert.Equal(t, Viridis(1), colors[1])
	assert.Equal(t, Unreachable, colors[2])
}

func TestShade(t *testing.T) {
	c := color.RGBA{200, 100, 50, 255}
	assert.Equal(t, color.RGBA{100, 50, 25, 255}, Shade(c, 0.5))
	assert.Equal(t, c, Shade(c, 2))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, Shade(c, -1))
}

func TestToasts(t *testing.T) {
	now := time.Unix(1000, 0)
	toasts := NewToasts(5*time.Second, 2)
	toasts.now = func() time.Time { return now }

	toasts.Info("one")
	toasts.Warning("two")
	toasts.Error("three")

	active := toasts.Active()
	require.Len(t, active, 2, "only the newest messages are kept")
	assert.Equal(t, "two", active[0].Text)
	assert.Equal(t, LevelWarning, active[0].Level)
	assert.Equal(t, LevelError, active[1].Level)
	assert.Equal(t, 1.0, toasts.Fade(active[0]))

	now = now.Add(4500 * time.Millisecond)
	assert.InDelta(t, 0.5, toasts.Fade(active[0]), 1e-9)

	now = now.Add(time.Second)
	assert.Empty(t, toasts.Active())
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "info", LevelInfo.String())
	assert.Equal(t, "warning", LevelWarning.String())
	assert.Equal(t, "error", LevelError.String())
}

func TestTextField(t *testing.T) {
	f := TextField{Max: 4}
	for _, r := range "1.5\x07x9" {
		f.Insert(r)
	}
	assert.Equal(t, "1.5x", f.Text, "control runes are dropped and length is capped")

	f.Backspace()
	v, err := f.Float()
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)

	f.Text = "µ"
	f.Backspace()
	assert.Empty(t, f.Text)
	f.Backspace()
	assert.Empty(t, f.Text)
}

func TestVectorFields(t *testing.T) {
	var fields [3]TextField
	SetVectorFields(&fields, geometry.NewVector3(0, 0.70710678, -1))
	assert.Equal(t, "0", fields[0].Text)
	assert.Equal(t, "0.7071", fields[1].Text)
	assert.Equal(t, "-1", fields[2].Text)

	v, err := VectorFields(fields)
	require.NoError(t, err)
	assert.Equal(t, geometry.NewVector3(0, 0.7071, -1), v)

	fields[1].Text = "abc"
	_, err = VectorFields(fields)
	assert.Error(t, err)
}

func TestSlider(t *testing.T) {
	assert.Equal(t, -1.0, SliderValue(0, 10, 200, -1, 1))
	assert.Equal(t, 1.0, SliderValue(500, 10, 200, -1, 1))
	assert.InDelta(t, 0.0, SliderValue(110, 10, 200, -1, 1), 1e-12)
	assert.InDelta(t, 110.0, SliderPosition(0, 10, 200, -1, 1), 1e-12)
	assert.Equal(t, 210.0, SliderPosition(3, 10, 200, -1, 1))
	assert.Equal(t, 10.0, SliderPosition(3, 10, 200, 1, 1))
}

func TestPlaneQuad(t *testing.T) {
	normals := []geometry.Vector3{
		geometry.UnitX, geometry.UnitY, geometry.UnitZ,
		geometry.NewVector3(1, 1, 1).Normalize(),
	}
	center := geometry.NewVector3(0.3, -0.2, 0.1)

	for _, n := range normals {
		p := geometry.Plane{Normal: n, Offset: 0.5}
		quad := PlaneQuad(p, center, 2)

		for _, corner := range quad {
			assert.InDelta(t, 0.0, p.SignedDistance(corner), 1e-9, "normal %s", n)
		}
		assert.InDelta(t, 2.0, quad[0].Distance(quad[1]), 1e-9)
		assert.InDelta(t, 2.0, quad[1].Distance(quad[2]), 1e-9)
	}
}
