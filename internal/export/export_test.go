package export

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/geoplane/pkg/geometry"
	"github.com/philipparndt/geoplane/pkg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(t *testing.T) *mesh.Geometry {
	t.Helper()
	m, err := mesh.New([][3]int{{0, 1, 2}, {0, 2, 3}}, 4)
	require.NoError(t, err)
	g, err := mesh.NewGeometry(m, []geometry.Vector3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: 0, Y: 1, Z: 0},
	})
	require.NoError(t, err)
	return g
}

func defaultPlane() geometry.Plane {
	return geometry.Plane{Normal: geometry.UnitY, Offset: -0.975}
}

func TestWriteFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, defaultPlane(), square(t), []float64{0, 0.5, 1.2, 0.333})
	require.NoError(t, err)

	expected := strings.Join([]string{
		"# Geodesic distances from plane",
		"# Plane normal: 0 1 0",
		"# Plane height: -0.975",
		"# Number of vertices: 4",
		"#",
		"# Format: vertex_index x y z geodesic_distance",
		"",
		"0 0.0000000000 0.0000000000 0.0000000000 0.0000000000",
		"1 1.0000000000 0.0000000000 0.0000000000 0.5000000000",
		"2 1.0000000000 1.0000000000 0.0000000000 1.2000000000",
		"3 0.0000000000 1.0000000000 0.0000000000 0.3330000000",
		"",
	}, "\n")
	assert.Equal(t, expected, buf.String())
}

func TestWriteHeaderNumbers(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{"integer", 1, "1"},
		{"zero", 0, "0"},
		{"fraction", -0.975, "-0.975"},
		{"six digits", 1.0 / 3.0, "0.333333"},
		{"small", 0.00001, "1e-05"},
		{"large", 1234567, "1.23457e+06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, short(tt.value))
		})
	}
}

func TestWriteUnreachable(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, defaultPlane(), square(t), []float64{0, math.Inf(1), 1, 2})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\n1 1.0000000000 0.0000000000 0.0000000000 inf\n")
}

func TestWriteRejectsMismatchedField(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, defaultPlane(), square(t), []float64{0, 1})
	assert.Error(t, err)
}

func TestToFileNothingComputed(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFilename)

	err := ToFile(path, defaultPlane(), square(t), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNothingComputed))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "export must not create the file")
}

func TestToFileLeavesExistingFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("keep"), 0o644))

	err := ToFile(path, defaultPlane(), square(t), []float64{})
	assert.ErrorIs(t, err, ErrNothingComputed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

func TestToFileOpenFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "out.txt")

	err := ToFile(path, defaultPlane(), square(t), []float64{0, 1, 2, 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOpen)
	assert.Equal(t, "Failed to open file for writing: "+path, OpenFailedMessage(path))
}

func TestRoundTrip(t *testing.T) {
	g := square(t)
	path := filepath.Join(t.TempDir(), DefaultFilename)
	distances := []float64{0, 0.5, math.Inf(1), 0.333}

	require.NoError(t, ToFile(path, defaultPlane(), g, distances))

	file, err := ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, geometry.UnitY, file.Normal)
	assert.Equal(t, -0.975, file.Height)
	assert.Equal(t, 4, file.NumVertices)
	require.Len(t, file.Rows, 4)
	for i, row := range file.Rows {
		assert.Equal(t, i, row.Index)
		assert.Equal(t, g.Position(i), row.Position)
	}
	assert.Equal(t, distances, file.Distances())
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"short row", "0 1 2 3\n"},
		{"bad index", "x 0 0 0 0\n"},
		{"bad value", "0 0 0 0 abc\n"},
		{"bad normal", "# Plane normal: 0 1\n"},
		{"count mismatch", "# Number of vertices: 2\n0 0 0 0 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}
