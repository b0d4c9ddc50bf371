package geodesic

import (
	"container/heap"
	"math"

	"github.com/philipparndt/geoplane/pkg/geometry"
	"github.com/philipparndt/geoplane/pkg/mesh"
)

// FastMarching propagates a first-order front across the triangles of the
// mesh. Faces touched by a source are initialized with exact in-face
// distances; elsewhere each triangle update fits a planar front through its
// two known corners, falling back to edge updates. Obtuse corners are split
// into two acute virtual triangles by unfolding the neighbouring faces.
type FastMarching struct {
	field
}

// NewFastMarching returns a fast-marching solver on g
func NewFastMarching(g *mesh.Geometry) *FastMarching {
	return &FastMarching{field: field{geom: g}}
}

type candidate struct {
	vertex int
	dist   float64
}

type frontier []candidate

func (f frontier) Len() int            { return len(f) }
func (f frontier) Less(i, j int) bool  { return f[i].dist < f[j].dist }
func (f frontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x interface{}) { *f = append(*f, x.(candidate)) }
func (f *frontier) Pop() interface{} {
	old := *f
	c := old[len(old)-1]
	*f = old[:len(old)-1]
	return c
}

// Propagate implements Solver
func (fm *FastMarching) Propagate(sources []SurfacePoint) error {
	if err := fm.reset(sources); err != nil {
		return err
	}
	m := fm.geom.Mesh()
	alive := make([]bool, m.NVertices())
	front := &frontier{}

	offer := func(v int, d float64, s int) {
		if !alive[v] && d < fm.dist[v] {
			fm.dist[v] = d
			fm.src[v] = s
			heap.Push(front, candidate{vertex: v, dist: d})
		}
	}

	splits := fm.obtuseSplits()

	for v, s := range fm.seeds() {
		offer(v, s.dist, s.source)
	}
	fm.initSourceFaces(offer)

	for front.Len() > 0 {
		c := heap.Pop(front).(candidate)
		v := c.vertex
		if alive[v] || c.dist > fm.dist[v] {
			continue
		}
		alive[v] = true

		for _, he := range m.VertexHalfedges(v) {
			u := m.Tip(he)
			offer(u, fm.dist[v]+fm.geom.EdgeLength(m.Edge(he)), fm.src[v])

			if m.IsBoundary(he) {
				continue
			}
			// Face (v, u, w): update whichever of u, w is still open.
			w := m.Tip(m.Next(he))
			switch {
			case alive[u] && !alive[w]:
				if d, ok := fm.triangleUpdate(v, u, w); ok {
					offer(w, d, fm.nearerSource(v, u))
				}
			case alive[w] && !alive[u]:
				if d, ok := fm.triangleUpdate(v, w, u); ok {
					offer(u, d, fm.nearerSource(v, w))
				}
			}
		}

		for _, vt := range splits[v] {
			if alive[vt.c] || !alive[vt.a] || !alive[vt.b] {
				continue
			}
			if d, ok := planarUpdate(vt.ea, vt.eb, fm.dist[vt.a], fm.dist[vt.b]); ok {
				offer(vt.c, d, fm.nearerSource(vt.a, vt.b))
			}
		}
	}
	return nil
}

func (fm *FastMarching) nearerSource(a, b int) int {
	if fm.dist[a] <= fm.dist[b] {
		return fm.src[a]
	}
	return fm.src[b]
}

// initSourceFaces gives every corner of a face that contains sources its
// planar distance to the source polyline inside that face.
func (fm *FastMarching) initSourceFaces(offer func(v int, d float64, s int)) {
	m := fm.geom.Mesh()
	inFace := make(map[int][]int)
	for i, s := range fm.sources {
		if s.Kind == OnVertex {
			for _, he := range m.VertexHalfedges(s.Vertex) {
				if f := m.Face(he); f != -1 {
					inFace[f] = append(inFace[f], i)
				}
			}
			continue
		}
		he := m.Halfedge(s.Edge)
		for _, h := range []int{he, m.Twin(he)} {
			if f := m.Face(h); f != -1 {
				inFace[f] = append(inFace[f], i)
			}
		}
	}

	for f, idx := range inFace {
		pts := make([]geometry.Vector3, len(idx))
		for k, i := range idx {
			pts[k] = fm.sources[i].Position(fm.geom)
		}
		for _, v := range m.FaceVertices(f) {
			x := fm.geom.Position(v)
			for a := range pts {
				offer(v, x.Distance(pts[a]), idx[a])
				for b := a + 1; b < len(pts); b++ {
					d, t := segmentDistance(x, pts[a], pts[b])
					s := idx[a]
					if t > 0.5 {
						s = idx[b]
					}
					offer(v, d, s)
				}
			}
		}
	}
}

// triangleUpdate computes the distance at c from known corners a and b,
// assuming the front is planar across the triangle. It reports false when
// the front would reach c from outside the triangle.
func (fm *FastMarching) triangleUpdate(a, b, c int) (float64, bool) {
	pc := fm.geom.Position(c)
	return planarUpdate(fm.geom.Position(a).Sub(pc), fm.geom.Position(b).Sub(pc), fm.dist[a], fm.dist[b])
}

// planarUpdate solves for the distance at the origin given the edge vectors
// e1, e2 to two corners with distances da, db.
func planarUpdate(e1, e2 geometry.Vector3, da, db float64) (float64, bool) {
	// Inverse Gram matrix of the edge vectors.
	g11, g12, g22 := e1.Dot(e1), e1.Dot(e2), e2.Dot(e2)
	det := g11*g22 - g12*g12
	if det <= 1e-14*g11*g22 {
		return 0, false
	}
	q11, q12, q22 := g22/det, -g12/det, g11/det

	// |grad|^2 = (d - dc)^T Q (d - dc) = 1, solved for dc.
	qa := q11 + 2*q12 + q22
	qb := -2 * (q11*da + q12*(da+db) + q22*db)
	qc := q11*da*da + 2*q12*da*db + q22*db*db - 1
	disc := qb*qb - 4*qa*qc
	if qa <= 0 || disc < 0 {
		return 0, false
	}
	dc := (-qb + math.Sqrt(disc)) / (2 * qa)
	if dc < math.Max(da, db) {
		return 0, false
	}

	// Upwind: the gradient at the origin must be a non-positive combination
	// of e1, e2.
	l1 := q11*(da-dc) + q12*(db-dc)
	l2 := q12*(da-dc) + q22*(db-dc)
	tol := 1e-9 * (math.Abs(l1) + math.Abs(l2))
	if l1 > tol || l2 > tol {
		return 0, false
	}
	return dc, true
}

// maxUnfold bounds how many faces are flattened while splitting one corner
const maxUnfold = 10

// virtualTriangle is an acute half of a split obtuse corner. ea and eb run
// from the corner c to a and b in the flattened frame.
type virtualTriangle struct {
	c, a, b int
	ea, eb  geometry.Vector3
}

// obtuseSplits returns the virtual triangles of every obtuse corner that
// could be split, indexed by both of their known corners.
func (fm *FastMarching) obtuseSplits() map[int][]virtualTriangle {
	m := fm.geom.Mesh()
	out := make(map[int][]virtualTriangle)
	add := func(vt virtualTriangle) {
		out[vt.a] = append(out[vt.a], vt)
		out[vt.b] = append(out[vt.b], vt)
	}
	for he := 0; he < m.NHalfedges(); he++ {
		if m.IsBoundary(he) {
			continue
		}
		p, ea, eb, ep, ok := fm.unfold(he)
		if !ok {
			continue
		}
		c, a, b := m.Tail(he), m.Tip(he), m.Tip(m.Next(he))
		add(virtualTriangle{c: c, a: a, b: p, ea: ea, eb: ep})
		add(virtualTriangle{c: c, a: p, b: b, ea: ep, eb: eb})
	}
	return out
}

// unfold looks for a vertex splitting the corner at the tail of he into two
// acute angles, flattening faces across the edge opposite the corner until
// one lands inside the section. Vectors are in a frame with the corner at
// the origin and its first edge along +X.
func (fm *FastMarching) unfold(he int) (int, geometry.Vector3, geometry.Vector3, geometry.Vector3, bool) {
	m, g := fm.geom.Mesh(), fm.geom
	var none geometry.Vector3
	c, a, b := m.Tail(he), m.Tip(he), m.Tip(m.Next(he))
	pc := g.Position(c)
	e1, e2 := g.Position(a).Sub(pc), g.Position(b).Sub(pc)
	la, lb := e1.Length(), e2.Length()
	dot := e1.Dot(e2)
	if la == 0 || lb == 0 || dot >= -1e-12*la*lb {
		return -1, none, none, none, false
	}
	bx := dot / la
	ea := geometry.NewVector3(la, 0, 0)
	eb := geometry.NewVector3(bx, math.Sqrt(math.Max(0, lb*lb-bx*bx)), 0)

	// edge runs from x to y with the flattened strip on its left.
	x, y := ea, eb
	edge := m.Next(he)
	for i := 0; i < maxUnfold; i++ {
		twin := m.Twin(edge)
		if m.IsBoundary(twin) {
			break
		}
		v := m.Tip(m.Next(twin))
		if v == c {
			break
		}
		pv := g.Position(v)
		p := flatten(x, y, pv.Distance(g.Position(m.Tail(edge))), pv.Distance(g.Position(m.Tip(edge))))

		// The acute section lies between eb turned back by 90 degrees
		// and +Y.
		acuteA, acuteB := p.X > 0, p.Dot(eb) > 0
		switch {
		case acuteA && acuteB:
			return v, ea, eb, p, true
		case acuteB:
			edge, y = m.Next(twin), p
		case acuteA:
			edge, x = m.Next(m.Next(twin)), p
		default:
			return -1, none, none, none, false
		}
	}
	return -1, none, none, none, false
}

// flatten places a vertex at distances lx, ly from x and y on the right of
// the segment x to y.
func flatten(x, y geometry.Vector3, lx, ly float64) geometry.Vector3 {
	u := y.Sub(x)
	l := u.Length()
	if l == 0 {
		return x
	}
	u = u.Mul(1 / l)
	s := (lx*lx - ly*ly + l*l) / (2 * l)
	h := math.Sqrt(math.Max(0, lx*lx-s*s))
	return x.Add(u.Mul(s)).Add(geometry.NewVector3(u.Y, -u.X, 0).Mul(h))
}

// segmentDistance returns the distance from p to segment ab and the
// parameter of the closest point
func segmentDistance(p, a, b geometry.Vector3) (float64, float64) {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Distance(a), 0
	}
	t := geometry.Clamp01(p.Sub(a).Dot(ab) / l2)
	return p.Distance(a.Add(ab.Mul(t))), t
}
