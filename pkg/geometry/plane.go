package geometry

import (
	"errors"
	"math"
)

// ErrZeroNormal is returned when a plane is built from a zero-length normal.
var ErrZeroNormal = errors.New("plane normal must not be zero")

// Plane is the implicit plane dot(p, Normal) = Offset. Normal is unit length.
type Plane struct {
	Normal Vector3
	Offset float64
}

// NewPlane returns a plane with the normal rescaled to unit length
func NewPlane(normal Vector3, offset float64) (Plane, error) {
	if normal.IsZero() || !normal.IsFinite() {
		return Plane{}, ErrZeroNormal
	}
	return Plane{Normal: normal.Normalize(), Offset: offset}, nil
}

// SignedDistance is positive on the side the normal points to
func (p Plane) SignedDistance(point Vector3) float64 {
	return point.Dot(p.Normal) - p.Offset
}

// WithNormal returns a copy of p with a new (renormalized) normal
func (p Plane) WithNormal(normal Vector3) (Plane, error) {
	return NewPlane(normal, p.Offset)
}

// Clamp01 limits t to [0, 1]. NaN maps to 0.
func Clamp01(t float64) float64 {
	if math.IsNaN(t) || t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
