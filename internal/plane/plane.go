// Package plane finds where a cutting plane crosses a mesh and turns the
// crossings into geodesic sources.
package plane

import (
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/geoplane/pkg/geodesic"
	"github.com/philipparndt/geoplane/pkg/geometry"
	"github.com/philipparndt/geoplane/pkg/mesh"
)

// ErrNoSources is returned when the plane does not cross any edge
var ErrNoSources = errors.New("no edges intersect with the plane")

// NoSourcesMessage is shown to the user when Intersect finds nothing
const NoSourcesMessage = "No edges intersect with the plane! Adjust plane parameters."

// parallelEpsilon rejects edges whose endpoints are (numerically) equidistant
// from the plane.
const parallelEpsilon = 1e-10

// Result holds the crossings of one plane with one mesh
type Result struct {
	// Sources has one edge point per crossing edge, in edge order
	Sources []geodesic.SurfacePoint
	// EdgeIndicator is 1 for crossing edges and 0 elsewhere, indexed by edge
	EdgeIndicator []float64
}

// Intersect scans every edge of m and records where p crosses it.
func Intersect(g *mesh.Geometry, p geometry.Plane) (*Result, error) {
	m := g.Mesh()
	result := &Result{
		EdgeIndicator: make([]float64, m.NEdges()),
	}

	for e := 0; e < m.NEdges(); e++ {
		v1, v2 := m.EdgeVertices(e)
		d1 := p.SignedDistance(g.Position(v1))
		d2 := p.SignedDistance(g.Position(v2))

		if d1*d2 > 0 || math.Abs(d1-d2) <= parallelEpsilon {
			continue
		}

		t := geometry.Clamp01(d1 / (d1 - d2))
		result.Sources = append(result.Sources, geodesic.EdgePoint(e, t))
		result.EdgeIndicator[e] = 1.0
	}

	if len(result.Sources) == 0 {
		return result, fmt.Errorf("plane %s at %g: %w", p.Normal, p.Offset, ErrNoSources)
	}
	return result, nil
}

// Count returns the number of crossing edges
func (r *Result) Count() int {
	return len(r.Sources)
}

// Positions returns the 3D location of every crossing
func (r *Result) Positions(g *mesh.Geometry) []geometry.Vector3 {
	points := make([]geometry.Vector3, len(r.Sources))
	for i, s := range r.Sources {
		points[i] = s.Position(g)
	}
	return points
}

// Segments returns the cut curve as line segments, one per face the plane
// crosses through two distinct points. A crossing at a shared vertex counts
// once, so a face cut through a corner and its opposite edge still yields
// its segment.
func (r *Result) Segments(g *mesh.Geometry) [][2]geometry.Vector3 {
	m := g.Mesh()
	onEdge := make(map[int]geometry.Vector3, len(r.Sources))
	for _, s := range r.Sources {
		onEdge[s.Edge] = crossing(g, s)
	}

	var segments [][2]geometry.Vector3
	for f := 0; f < m.NFaces(); f++ {
		var hits []geometry.Vector3
		for _, he := range m.FaceHalfedges(f) {
			pt, ok := onEdge[m.Edge(he)]
			if !ok || contains(hits, pt) {
				continue
			}
			hits = append(hits, pt)
		}
		if len(hits) >= 2 {
			segments = append(segments, [2]geometry.Vector3{hits[0], hits[1]})
		}
	}
	return segments
}

// crossing returns the position of s, snapped to the exact vertex position
// at either end of the edge
func crossing(g *mesh.Geometry, s geodesic.SurfacePoint) geometry.Vector3 {
	a, b := g.Mesh().EdgeVertices(s.Edge)
	switch s.T {
	case 0:
		return g.Position(a)
	case 1:
		return g.Position(b)
	}
	return s.Position(g)
}

func contains(points []geometry.Vector3, p geometry.Vector3) bool {
	for _, q := range points {
		if q == p {
			return true
		}
	}
	return false
}
