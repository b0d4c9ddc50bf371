package mesh

import (
	"fmt"

	"github.com/philipparndt/geoplane/pkg/geometry"
)

// Geometry attaches vertex positions to a mesh
type Geometry struct {
	mesh      *Mesh
	Positions []geometry.Vector3
}

// NewGeometry binds positions to a mesh, one per vertex
func NewGeometry(m *Mesh, positions []geometry.Vector3) (*Geometry, error) {
	if len(positions) != m.NVertices() {
		return nil, fmt.Errorf("got %d positions for %d vertices", len(positions), m.NVertices())
	}
	return &Geometry{mesh: m, Positions: positions}, nil
}

// Mesh returns the mesh the geometry belongs to
func (g *Geometry) Mesh() *Mesh { return g.mesh }

// Position returns the position of vertex v
func (g *Geometry) Position(v int) geometry.Vector3 { return g.Positions[v] }

// EdgeLength returns the straight-line length of edge e
func (g *Geometry) EdgeLength(e int) float64 {
	a, b := g.mesh.EdgeVertices(e)
	return g.Positions[a].Distance(g.Positions[b])
}

// HalfedgeVector returns tip - tail
func (g *Geometry) HalfedgeVector(he int) geometry.Vector3 {
	return g.Positions[g.mesh.Tip(he)].Sub(g.Positions[g.mesh.Tail(he)])
}

// FaceNormal returns the unit normal of face f, zero for degenerate faces
func (g *Geometry) FaceNormal(f int) geometry.Vector3 {
	return g.faceCross(f).Normalize()
}

// FaceArea returns the area of face f
func (g *Geometry) FaceArea(f int) float64 {
	return g.faceCross(f).Length() / 2
}

func (g *Geometry) faceCross(f int) geometry.Vector3 {
	v := g.mesh.FaceVertices(f)
	a, b, c := g.Positions[v[0]], g.Positions[v[1]], g.Positions[v[2]]
	return b.Sub(a).Cross(c.Sub(a))
}

// VertexNormal returns the area-weighted average of incident face normals
func (g *Geometry) VertexNormal(v int) geometry.Vector3 {
	var n geometry.Vector3
	for _, he := range g.mesh.VertexHalfedges(v) {
		if f := g.mesh.Face(he); f != -1 {
			n = n.Add(g.faceCross(f))
		}
	}
	return n.Normalize()
}

// BoundingBox returns the bounds of all vertex positions
func (g *Geometry) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, p := range g.Positions {
		bbox.Extend(p)
	}
	return bbox
}

// SurfaceArea returns the total face area
func (g *Geometry) SurfaceArea() float64 {
	total := 0.0
	for f := 0; f < g.mesh.NFaces(); f++ {
		total += g.FaceArea(f)
	}
	return total
}

// EdgeLengths returns the length of every edge in edge order
func (g *Geometry) EdgeLengths() []float64 {
	lengths := make([]float64, g.mesh.NEdges())
	for e := range lengths {
		lengths[e] = g.EdgeLength(e)
	}
	return lengths
}
