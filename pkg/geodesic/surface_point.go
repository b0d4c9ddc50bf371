package geodesic

import (
	"fmt"

	"github.com/philipparndt/geoplane/pkg/geometry"
	"github.com/philipparndt/geoplane/pkg/mesh"
)

// Kind says where on the mesh a SurfacePoint sits
type Kind int

const (
	OnVertex Kind = iota
	OnEdge
)

// SurfacePoint is a point on the mesh: either a vertex, or a point on an
// edge at parameter T from the tail of the edge's canonical halfedge.
type SurfacePoint struct {
	Kind   Kind
	Vertex int
	Edge   int
	T      float64
}

// VertexPoint returns the surface point at vertex v
func VertexPoint(v int) SurfacePoint {
	return SurfacePoint{Kind: OnVertex, Vertex: v}
}

// EdgePoint returns the surface point at parameter t along edge e
func EdgePoint(e int, t float64) SurfacePoint {
	return SurfacePoint{Kind: OnEdge, Edge: e, T: t}
}

// Position returns the 3D location of the point
func (p SurfacePoint) Position(g *mesh.Geometry) geometry.Vector3 {
	if p.Kind == OnVertex {
		return g.Position(p.Vertex)
	}
	a, b := g.Mesh().EdgeVertices(p.Edge)
	return g.Position(a).Lerp(g.Position(b), p.T)
}

func (p SurfacePoint) String() string {
	if p.Kind == OnVertex {
		return fmt.Sprintf("vertex %d", p.Vertex)
	}
	return fmt.Sprintf("edge %d @ %.4f", p.Edge, p.T)
}

func (p SurfacePoint) validate(m *mesh.Mesh) error {
	switch p.Kind {
	case OnVertex:
		if p.Vertex < 0 || p.Vertex >= m.NVertices() {
			return fmt.Errorf("source vertex %d out of range", p.Vertex)
		}
	case OnEdge:
		if p.Edge < 0 || p.Edge >= m.NEdges() {
			return fmt.Errorf("source edge %d out of range", p.Edge)
		}
		if p.T < 0 || p.T > 1 {
			return fmt.Errorf("source parameter %v on edge %d outside [0,1]", p.T, p.Edge)
		}
	default:
		return fmt.Errorf("unknown surface point kind %d", p.Kind)
	}
	return nil
}
