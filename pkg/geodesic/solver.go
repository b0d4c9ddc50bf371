// Package geodesic computes distances along a triangle mesh surface from a
// set of source points.
package geodesic

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/philipparndt/geoplane/pkg/mesh"
)

var (
	// ErrNoSources is returned when Propagate gets an empty source set
	ErrNoSources = errors.New("no geodesic sources")
	// ErrNotPropagated is returned by queries made before Propagate succeeded
	ErrNotPropagated = errors.New("geodesic distances not propagated")
	// ErrUnknownSolver is returned for names New does not know
	ErrUnknownSolver = errors.New("unknown geodesic solver")
)

// Solver names accepted by New
const (
	FastMarchingName = "fmm"
	DijkstraName     = "dijkstra"
)

// Solver propagates distances from sources and answers nearest-source queries.
type Solver interface {
	// Propagate computes distances from sources to every vertex, replacing
	// the result of any previous call.
	Propagate(sources []SurfacePoint) error
	// ClosestSource returns the index of the nearest source and its
	// distance, or (-1, +Inf) when nothing reaches p.
	ClosestSource(p SurfacePoint) (int, float64)
}

// CheckName reports whether New accepts name, without building a solver.
// The empty name selects fast marching.
func CheckName(name string) error {
	switch strings.ToLower(name) {
	case FastMarchingName, DijkstraName, "":
		return nil
	}
	return fmt.Errorf("%w %q (expected %s or %s)", ErrUnknownSolver, name, FastMarchingName, DijkstraName)
}

// New returns the solver registered under name
func New(name string, g *mesh.Geometry) (Solver, error) {
	if err := CheckName(name); err != nil {
		return nil, err
	}
	if strings.EqualFold(name, DijkstraName) {
		return NewDijkstra(g), nil
	}
	return NewFastMarching(g), nil
}

// field is the per-vertex result shared by the solvers
type field struct {
	geom    *mesh.Geometry
	sources []SurfacePoint
	onEdge  map[int][]int // edge -> indices of sources on it
	dist    []float64
	src     []int
}

func (f *field) reset(sources []SurfacePoint) error {
	f.sources = nil
	f.dist = nil
	f.src = nil
	if len(sources) == 0 {
		return ErrNoSources
	}
	m := f.geom.Mesh()
	for _, s := range sources {
		if err := s.validate(m); err != nil {
			return err
		}
	}

	f.sources = append([]SurfacePoint(nil), sources...)
	f.onEdge = make(map[int][]int)
	for i, s := range f.sources {
		if s.Kind == OnEdge {
			f.onEdge[s.Edge] = append(f.onEdge[s.Edge], i)
		}
	}
	f.dist = make([]float64, m.NVertices())
	f.src = make([]int, m.NVertices())
	for v := range f.dist {
		f.dist[v] = math.Inf(1)
		f.src[v] = -1
	}
	return nil
}

// seeds returns the straight-line distance from each source to the vertices
// of the element it lies on, keeping the nearest source per vertex.
func (f *field) seeds() map[int]seed {
	out := make(map[int]seed)
	offer := func(v int, d float64, s int) {
		if cur, ok := out[v]; !ok || d < cur.dist {
			out[v] = seed{dist: d, source: s}
		}
	}
	m := f.geom.Mesh()
	for i, s := range f.sources {
		if s.Kind == OnVertex {
			offer(s.Vertex, 0, i)
			continue
		}
		a, b := m.EdgeVertices(s.Edge)
		l := f.geom.EdgeLength(s.Edge)
		offer(a, s.T*l, i)
		offer(b, (1-s.T)*l, i)
	}
	return out
}

type seed struct {
	dist   float64
	source int
}

// ClosestSource implements Solver
func (f *field) ClosestSource(p SurfacePoint) (int, float64) {
	if f.dist == nil {
		return -1, math.Inf(1)
	}
	if p.Kind == OnVertex {
		if p.Vertex < 0 || p.Vertex >= len(f.dist) {
			return -1, math.Inf(1)
		}
		return f.src[p.Vertex], f.dist[p.Vertex]
	}

	m := f.geom.Mesh()
	if p.Edge < 0 || p.Edge >= m.NEdges() {
		return -1, math.Inf(1)
	}
	l := f.geom.EdgeLength(p.Edge)
	a, b := m.EdgeVertices(p.Edge)

	best, bestDist := f.src[a], f.dist[a]+p.T*l
	if d := f.dist[b] + (1-p.T)*l; d < bestDist {
		best, bestDist = f.src[b], d
	}
	for _, i := range f.onEdge[p.Edge] {
		if d := math.Abs(p.T-f.sources[i].T) * l; d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}

// ClosestSourceErr is ClosestSource with an error when no propagation has
// been run yet.
func ClosestSourceErr(s Solver, p SurfacePoint) (int, float64, error) {
	if f, ok := s.(interface{ propagated() bool }); ok && !f.propagated() {
		return -1, math.Inf(1), ErrNotPropagated
	}
	i, d := s.ClosestSource(p)
	return i, d, nil
}

func (f *field) propagated() bool { return f.dist != nil }

// VertexDistances queries the distance of every vertex in mesh order
func VertexDistances(s Solver, nVertices int) []float64 {
	out := make([]float64, nVertices)
	for v := range out {
		_, out[v] = s.ClosestSource(VertexPoint(v))
	}
	return out
}

// labelSources assigns each vertex the source of the neighbour its distance
// was reached through, visiting vertices in order of distance.
func (f *field) labelSources(seeded map[int]seed) {
	m := f.geom.Mesh()
	order := make([]int, 0, len(f.dist))
	for v, d := range f.dist {
		if !math.IsInf(d, 1) {
			order = append(order, v)
		}
	}
	sort.Slice(order, func(i, j int) bool { return f.dist[order[i]] < f.dist[order[j]] })

	for _, v := range order {
		bestDist := math.Inf(1)
		if s, ok := seeded[v]; ok {
			f.src[v], bestDist = s.source, s.dist
		}
		for _, he := range m.VertexHalfedges(v) {
			u := m.Tip(he)
			if f.src[u] == -1 {
				continue
			}
			if d := f.dist[u] + f.geom.EdgeLength(m.Edge(he)); d < bestDist {
				f.src[v], bestDist = f.src[u], d
			}
		}
	}
}
