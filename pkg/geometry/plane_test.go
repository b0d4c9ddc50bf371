package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlaneNormalizes(t *testing.T) {
	p, err := NewPlane(NewVector3(0, 3, 4), 0.5)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, p.Normal.Length(), 1e-12)
	assert.InDelta(t, 0.6, p.Normal.Y, 1e-12)
	assert.InDelta(t, 0.8, p.Normal.Z, 1e-12)
	assert.Equal(t, 0.5, p.Offset)
}

func TestNewPlaneRejectsDegenerateNormal(t *testing.T) {
	_, err := NewPlane(Vector3{}, 0)
	assert.ErrorIs(t, err, ErrZeroNormal)

	_, err = NewPlane(NewVector3(math.NaN(), 1, 0), 0)
	assert.ErrorIs(t, err, ErrZeroNormal)
}

func TestPlaneSignedDistance(t *testing.T) {
	p := Plane{Normal: UnitY, Offset: -0.975}

	assert.InDelta(t, 0.975, p.SignedDistance(NewVector3(5, 0, 5)), 1e-12)
	assert.InDelta(t, -0.025, p.SignedDistance(NewVector3(0, -1, 0)), 1e-12)
	assert.InDelta(t, 0.0, p.SignedDistance(NewVector3(1, -0.975, 2)), 1e-12)
}

func TestPlaneWithNormalKeepsOffset(t *testing.T) {
	p := Plane{Normal: UnitY, Offset: 0.25}
	q, err := p.WithNormal(NewVector3(2, 0, 0))
	require.NoError(t, err)

	assert.Equal(t, UnitX, q.Normal)
	assert.Equal(t, 0.25, q.Offset)
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.3, 0.3},
		{1, 1},
		{1.0000001, 1},
		{math.Inf(1), 1},
		{math.Inf(-1), 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clamp01(tt.in), "Clamp01(%v)", tt.in)
	}
}
