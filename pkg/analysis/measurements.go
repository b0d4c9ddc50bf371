// Package analysis summarizes meshes and distance fields for the CLI and
// the viewer overlay.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/philipparndt/geoplane/pkg/geometry"
	"github.com/philipparndt/geoplane/pkg/mesh"
)

// EdgeInfo describes one mesh edge
type EdgeInfo struct {
	Edge   int
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64
}

// MeshResult contains measurements of a mesh
type MeshResult struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	VertexCount   int
	EdgeCount     int
	FaceCount     int
	BoundaryEdges int
	Isolated      int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	AllEdges      []EdgeInfo
}

// AnalyzeMesh measures g
func AnalyzeMesh(g *mesh.Geometry) *MeshResult {
	m := g.Mesh()
	result := &MeshResult{
		BoundingBox:   g.BoundingBox(),
		SurfaceArea:   g.SurfaceArea(),
		VertexCount:   m.NVertices(),
		EdgeCount:     m.NEdges(),
		FaceCount:     m.NFaces(),
		BoundaryEdges: m.BoundaryEdgeCount(),
		Isolated:      len(m.IsolatedVertices()),
		AllEdges:      make([]EdgeInfo, m.NEdges()),
	}
	result.Dimensions = result.BoundingBox.Size()

	lengths := g.EdgeLengths()
	for e, length := range lengths {
		a, b := m.EdgeVertices(e)
		result.AllEdges[e] = EdgeInfo{
			Edge:   e,
			Start:  g.Position(a),
			End:    g.Position(b),
			Length: length,
		}
	}

	if len(lengths) > 0 {
		result.MinEdgeLength = floats.Min(lengths)
		result.MaxEdgeLength = floats.Max(lengths)
		result.AvgEdgeLength = stat.Mean(lengths, nil)
	}
	return result
}

// FindLongestEdges returns the N longest edges
func FindLongestEdges(result *MeshResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b float64) bool { return a > b })
}

// FindShortestEdges returns the N shortest edges
func FindShortestEdges(result *MeshResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b float64) bool { return a < b })
}

func sortedEdges(result *MeshResult, count int, less func(a, b float64) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i].Length, edges[j].Length)
	})

	if count > len(edges) {
		count = len(edges)
	}
	return edges[:count]
}

// DistanceStats summarizes a per-vertex distance field
type DistanceStats struct {
	Count       int
	Reachable   int
	Unreachable int
	Min         float64
	Max         float64
	Mean        float64
	StdDev      float64
	Median      float64
}

// AnalyzeDistances computes statistics over the finite values of a field.
// Infinite values are only counted.
func AnalyzeDistances(distances []float64) DistanceStats {
	finite := make([]float64, 0, len(distances))
	for _, d := range distances {
		if !math.IsInf(d, 0) && !math.IsNaN(d) {
			finite = append(finite, d)
		}
	}

	result := DistanceStats{
		Count:       len(distances),
		Reachable:   len(finite),
		Unreachable: len(distances) - len(finite),
	}
	if len(finite) == 0 {
		return result
	}

	sort.Float64s(finite)
	result.Min = finite[0]
	result.Max = finite[len(finite)-1]
	result.Mean, result.StdDev = stat.MeanStdDev(finite, nil)
	result.Median = stat.Quantile(0.5, stat.Empirical, finite, nil)
	if len(finite) == 1 {
		result.StdDev = 0
	}
	return result
}

// Normalize maps finite values to [0, 1] using the field's range. Infinite
// values map to -1 so renderers can pick a separate color.
func Normalize(distances []float64) []float64 {
	stats := AnalyzeDistances(distances)
	out := make([]float64, len(distances))
	span := stats.Max - stats.Min

	for i, d := range distances {
		switch {
		case math.IsInf(d, 0) || math.IsNaN(d):
			out[i] = -1
		case span == 0:
			out[i] = 0
		default:
			out[i] = (d - stats.Min) / span
		}
	}
	return out
}

// NearestVertex finds the vertex of g nearest to a given point
func NearestVertex(g *mesh.Geometry, point geometry.Vector3) (int, float64) {
	nearest := -1
	minDistance := math.MaxFloat64

	for v, pos := range g.Positions {
		distance := point.Distance(pos)
		if distance < minDistance {
			minDistance = distance
			nearest = v
		}
	}
	return nearest, minDistance
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
