// Package mesh implements a manifold triangle mesh with half-edge
// connectivity. Vertices, edges, halfedges and faces are dense indices.
package mesh

import (
	"errors"
	"fmt"
)

var (
	// ErrNonManifold is returned for edges or vertices that do not have a
	// manifold neighbourhood, including inconsistently oriented faces.
	ErrNonManifold = errors.New("mesh is not manifold")
	// ErrInvalidFace is returned for malformed faces.
	ErrInvalidFace = errors.New("invalid face")
)

// Mesh is a manifold, possibly bounded, triangle mesh.
//
// Interior halfedges of face f are 3f, 3f+1, 3f+2. Boundary halfedges
// follow after all interior ones and have Face == -1.
type Mesh struct {
	nVertices int
	nFaces    int

	heNext   []int
	heTwin   []int
	heVertex []int // tail vertex
	heFace   []int
	heEdge   []int

	edgeHalfedge   []int
	vertexHalfedge []int // an outgoing halfedge, -1 for isolated vertices
}

type orientedEdge struct{ from, to int }

// New builds a mesh from a triangle face-vertex list.
func New(faces [][3]int, nVertices int) (*Mesh, error) {
	m := &Mesh{
		nVertices:      nVertices,
		nFaces:         len(faces),
		vertexHalfedge: make([]int, nVertices),
	}
	for i := range m.vertexHalfedge {
		m.vertexHalfedge[i] = -1
	}

	nInterior := 3 * len(faces)
	m.heNext = make([]int, nInterior)
	m.heTwin = make([]int, nInterior)
	m.heVertex = make([]int, nInterior)
	m.heFace = make([]int, nInterior)
	m.heEdge = make([]int, nInterior)

	lookup := make(map[orientedEdge]int, nInterior)
	for f, face := range faces {
		for i := 0; i < 3; i++ {
			v := face[i]
			if v < 0 || v >= nVertices {
				return nil, fmt.Errorf("%w: face %d references vertex %d of %d", ErrInvalidFace, f, v, nVertices)
			}
			if v == face[(i+1)%3] {
				return nil, fmt.Errorf("%w: face %d repeats vertex %d", ErrInvalidFace, f, v)
			}
		}
		for i := 0; i < 3; i++ {
			he := 3*f + i
			key := orientedEdge{face[i], face[(i+1)%3]}
			if prev, ok := lookup[key]; ok {
				return nil, fmt.Errorf("%w: edge %d->%d used by faces %d and %d", ErrNonManifold, key.from, key.to, prev/3, f)
			}
			lookup[key] = he
			m.heNext[he] = 3*f + (i+1)%3
			m.heVertex[he] = face[i]
			m.heFace[he] = f
			m.heTwin[he] = -1
			m.heEdge[he] = -1
			if m.vertexHalfedge[face[i]] == -1 {
				m.vertexHalfedge[face[i]] = he
			}
		}
	}

	// Pair interior halfedges, assigning edges in first-seen order.
	for he := 0; he < nInterior; he++ {
		if m.heEdge[he] != -1 {
			continue
		}
		e := len(m.edgeHalfedge)
		m.edgeHalfedge = append(m.edgeHalfedge, he)
		m.heEdge[he] = e

		tip := m.heVertex[m.heNext[he]]
		if twin, ok := lookup[orientedEdge{tip, m.heVertex[he]}]; ok {
			m.heTwin[he] = twin
			m.heTwin[twin] = he
			m.heEdge[twin] = e
		}
	}

	if err := m.closeBoundary(nInterior); err != nil {
		return nil, err
	}
	if err := m.checkVertexFans(); err != nil {
		return nil, err
	}
	return m, nil
}

// closeBoundary creates boundary halfedges for every unpaired interior one
// and links them into boundary loops.
func (m *Mesh) closeBoundary(nInterior int) error {
	boundaryFrom := make(map[int]int)
	for he := 0; he < nInterior; he++ {
		if m.heTwin[he] != -1 {
			continue
		}
		b := len(m.heNext)
		tail := m.heVertex[m.heNext[he]]
		m.heNext = append(m.heNext, -1)
		m.heTwin = append(m.heTwin, he)
		m.heVertex = append(m.heVertex, tail)
		m.heFace = append(m.heFace, -1)
		m.heEdge = append(m.heEdge, m.heEdge[he])
		m.heTwin[he] = b

		if _, dup := boundaryFrom[tail]; dup {
			return fmt.Errorf("%w: vertex %d touches the boundary more than once", ErrNonManifold, tail)
		}
		boundaryFrom[tail] = b
	}

	for b := nInterior; b < len(m.heNext); b++ {
		tip := m.heVertex[m.heTwin[b]]
		next, ok := boundaryFrom[tip]
		if !ok {
			return fmt.Errorf("%w: open boundary at vertex %d", ErrNonManifold, tip)
		}
		m.heNext[b] = next
	}
	return nil
}

// checkVertexFans verifies that every vertex has a single fan of faces.
func (m *Mesh) checkVertexFans() error {
	degree := make([]int, m.nVertices)
	for he := range m.heVertex {
		degree[m.heVertex[he]]++
	}
	for v := 0; v < m.nVertices; v++ {
		start := m.vertexHalfedge[v]
		if start == -1 {
			continue
		}
		count := 0
		for he := start; ; {
			count++
			he = m.heNext[m.heTwin[he]]
			if he == start {
				break
			}
			if count > degree[v] {
				break
			}
		}
		if count != degree[v] {
			return fmt.Errorf("%w: vertex %d has %d incident halfedges but a fan of %d", ErrNonManifold, v, degree[v], count)
		}
	}
	return nil
}

// NVertices returns the vertex count
func (m *Mesh) NVertices() int { return m.nVertices }

// NEdges returns the edge count
func (m *Mesh) NEdges() int { return len(m.edgeHalfedge) }

// NFaces returns the face count
func (m *Mesh) NFaces() int { return m.nFaces }

// NHalfedges returns the halfedge count, boundary halfedges included
func (m *Mesh) NHalfedges() int { return len(m.heNext) }


// Halfedge returns the canonical halfedge of an edge, which is always interior
func (m *Mesh) Halfedge(e int) int { return m.edgeHalfedge[e] }

// Twin returns the opposite halfedge
func (m *Mesh) Twin(he int) int { return m.heTwin[he] }

// Next returns the next halfedge around the face or boundary loop
func (m *Mesh) Next(he int) int { return m.heNext[he] }

// Tail returns the vertex a halfedge starts at
func (m *Mesh) Tail(he int) int { return m.heVertex[he] }

// Tip returns the vertex a halfedge points to
func (m *Mesh) Tip(he int) int { return m.heVertex[m.heTwin[he]] }

// Face returns the face of a halfedge, or -1 on the boundary
func (m *Mesh) Face(he int) int { return m.heFace[he] }

// Edge returns the edge a halfedge belongs to
func (m *Mesh) Edge(he int) int { return m.heEdge[he] }

// IsBoundary reports whether the halfedge lies outside every face
func (m *Mesh) IsBoundary(he int) bool { return m.heFace[he] == -1 }

// EdgeVertices returns the tail and tip of the edge's canonical halfedge
func (m *Mesh) EdgeVertices(e int) (int, int) {
	he := m.edgeHalfedge[e]
	return m.Tail(he), m.Tip(he)
}

// FaceHalfedges returns the three interior halfedges of a face
func (m *Mesh) FaceHalfedges(f int) [3]int {
	return [3]int{3 * f, 3*f + 1, 3*f + 2}
}

// FaceVertices returns the three corners of a face in orientation order
func (m *Mesh) FaceVertices(f int) [3]int {
	return [3]int{m.heVertex[3*f], m.heVertex[3*f+1], m.heVertex[3*f+2]}
}

// FaceVertexList returns all faces as vertex triples
func (m *Mesh) FaceVertexList() [][3]int {
	faces := make([][3]int, m.NFaces())
	for f := range faces {
		faces[f] = m.FaceVertices(f)
	}
	return faces
}

// VertexHalfedges returns the outgoing halfedges of v, boundary included
func (m *Mesh) VertexHalfedges(v int) []int {
	start := m.vertexHalfedge[v]
	if start == -1 {
		return nil
	}
	var out []int
	for he := start; ; {
		out = append(out, he)
		he = m.heNext[m.heTwin[he]]
		if he == start {
			break
		}
	}
	return out
}

// IsolatedVertices returns vertices referenced by no face
func (m *Mesh) IsolatedVertices() []int {
	var out []int
	for v, he := range m.vertexHalfedge {
		if he == -1 {
			out = append(out, v)
		}
	}
	return out
}

// BoundaryEdgeCount returns the number of edges with only one face
func (m *Mesh) BoundaryEdgeCount() int {
	return len(m.heNext) - 3*m.nFaces
}
