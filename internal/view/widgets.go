package view

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/philipparndt/geoplane/pkg/geometry"
)

// TextField is the editing state of a single line input
type TextField struct {
	Text   string
	Active bool
	Max    int
}

// Insert appends a printable rune unless the field is full
func (f *TextField) Insert(r rune) {
	if r < 32 || r == 127 {
		return
	}
	if f.Max > 0 && utf8.RuneCountInString(f.Text) >= f.Max {
		return
	}
	f.Text += string(r)
}

// Backspace removes the last rune
func (f *TextField) Backspace() {
	if f.Text == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(f.Text)
	f.Text = f.Text[:len(f.Text)-size]
}

// Float parses the field as a number
func (f *TextField) Float() (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(f.Text), 64)
}

// FormatComponent renders a vector component for a text field
func FormatComponent(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}

// VectorFields parses three fields into a vector
func VectorFields(fields [3]TextField) (geometry.Vector3, error) {
	var c [3]float64
	for i := range fields {
		v, err := fields[i].Float()
		if err != nil {
			return geometry.Vector3{}, err
		}
		c[i] = v
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

// SetVectorFields writes v into three fields
func SetVectorFields(fields *[3]TextField, v geometry.Vector3) {
	fields[0].Text = FormatComponent(v.X)
	fields[1].Text = FormatComponent(v.Y)
	fields[2].Text = FormatComponent(v.Z)
}

// SliderValue maps a mouse x coordinate on a track to a value in [lo, hi]
func SliderValue(mouseX, trackX, trackWidth, lo, hi float64) float64 {
	if trackWidth <= 0 {
		return lo
	}
	t := (mouseX - trackX) / trackWidth
	t = math.Max(0, math.Min(1, t))
	return lo + t*(hi-lo)
}

// SliderPosition is the inverse of SliderValue, clamped to the track
func SliderPosition(value, trackX, trackWidth, lo, hi float64) float64 {
	if hi == lo {
		return trackX
	}
	t := (value - lo) / (hi - lo)
	t = math.Max(0, math.Min(1, t))
	return trackX + t*trackWidth
}

// PlaneQuad returns four corners of a square of the given size lying in p,
// centered on the projection of center onto p.
func PlaneQuad(p geometry.Plane, center geometry.Vector3, size float64) [4]geometry.Vector3 {
	n := p.Normal
	origin := center.Sub(n.Mul(p.SignedDistance(center)))

	helper := geometry.UnitX
	if math.Abs(n.X) > 0.9 {
		helper = geometry.UnitY
	}
	u := n.Cross(helper).Normalize().Mul(size / 2)
	v := n.Cross(u).Normalize().Mul(size / 2)

	return [4]geometry.Vector3{
		origin.Sub(u).Sub(v),
		origin.Add(u).Sub(v),
		origin.Add(u).Add(v),
		origin.Sub(u).Add(v),
	}
}
