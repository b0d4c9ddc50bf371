// Package export writes per-vertex geodesic distances to a plain text file
// and reads such files back.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/philipparndt/geoplane/pkg/geometry"
	"github.com/philipparndt/geoplane/pkg/mesh"
)

var (
	// ErrNothingComputed is returned when there is no distance field to write
	ErrNothingComputed = errors.New("no geodesic distances computed")
	// ErrOpen is returned when the destination cannot be opened for writing
	ErrOpen = errors.New("failed to open file for writing")
)

// DefaultFilename is the export destination used when none is configured
const DefaultFilename = "geodesic_distances.txt"

// User facing messages
const (
	NothingComputedMessage = "No geodesic distances computed yet. Please compute geodesics first."
	openFailedFormat       = "Failed to open file for writing: %s"
	exportedFormat         = "Exported geodesic distances to: %s"
)

// OpenFailedMessage is shown when the destination cannot be opened
func OpenFailedMessage(path string) string {
	return fmt.Sprintf(openFailedFormat, path)
}

// ExportedMessage is shown after a successful export
func ExportedMessage(path string) string {
	return fmt.Sprintf(exportedFormat, path)
}

// ToFile writes the distance field to path. An empty field leaves the
// file system untouched.
func ToFile(path string, p geometry.Plane, g *mesh.Geometry, distances []float64) error {
	if len(distances) == 0 {
		return ErrNothingComputed
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
	}

	if err := Write(file, p, g, distances); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// Write serializes the header and one line per vertex to w
func Write(w io.Writer, p geometry.Plane, g *mesh.Geometry, distances []float64) error {
	if len(distances) == 0 {
		return ErrNothingComputed
	}
	n := g.Mesh().NVertices()
	if len(distances) != n {
		return fmt.Errorf("distance field has %d values for %d vertices", len(distances), n)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# Geodesic distances from plane")
	fmt.Fprintf(bw, "# Plane normal: %s %s %s\n", short(p.Normal.X), short(p.Normal.Y), short(p.Normal.Z))
	fmt.Fprintf(bw, "# Plane height: %s\n", short(p.Offset))
	fmt.Fprintf(bw, "# Number of vertices: %d\n", n)
	fmt.Fprintln(bw, "#")
	fmt.Fprintln(bw, "# Format: vertex_index x y z geodesic_distance")
	fmt.Fprintln(bw)

	for v := 0; v < n; v++ {
		pos := g.Position(v)
		fmt.Fprintf(bw, "%d %s %s %s %s\n", v,
			fixed(pos.X), fixed(pos.Y), fixed(pos.Z), fixed(distances[v]))
	}
	return bw.Flush()
}

// short formats a header value with six significant digits, trimming
// trailing zeros.
func short(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func fixed(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "nan"
	}
	return strconv.FormatFloat(v, 'f', 10, 64)
}
