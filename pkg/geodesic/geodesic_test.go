package geodesic

import (
	"math"
	"math/rand"
	"testing"

	"github.com/philipparndt/geoplane/pkg/geometry"
	"github.com/philipparndt/geoplane/pkg/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatGrid returns an n x n vertex grid over the unit square in z = 0
func flatGrid(t *testing.T, n int) *mesh.Geometry {
	t.Helper()
	h := 1.0 / float64(n-1)
	idx := func(i, j int) int { return j*n + i }

	positions := make([]geometry.Vector3, 0, n*n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			positions = append(positions, geometry.NewVector3(float64(i)*h, float64(j)*h, 0))
		}
	}
	var faces [][3]int
	for j := 0; j+1 < n; j++ {
		for i := 0; i+1 < n; i++ {
			faces = append(faces,
				[3]int{idx(i, j), idx(i+1, j), idx(i+1, j+1)},
				[3]int{idx(i, j), idx(i+1, j+1), idx(i, j+1)},
			)
		}
	}

	m, err := mesh.New(faces, len(positions))
	require.NoError(t, err)
	g, err := mesh.NewGeometry(m, positions)
	require.NoError(t, err)
	return g
}

// cutAtX returns edge sources where the line x = c crosses the mesh
func cutAtX(g *mesh.Geometry, c float64) []SurfacePoint {
	var sources []SurfacePoint
	m := g.Mesh()
	for e := 0; e < m.NEdges(); e++ {
		a, b := m.EdgeVertices(e)
		d1, d2 := g.Position(a).X-c, g.Position(b).X-c
		if d1*d2 < 0 {
			sources = append(sources, EdgePoint(e, d1/(d1-d2)))
		}
	}
	return sources
}

func solvers(g *mesh.Geometry) map[string]Solver {
	return map[string]Solver{
		FastMarchingName: NewFastMarching(g),
		DijkstraName:     NewDijkstra(g),
	}
}

func TestNew(t *testing.T) {
	g := flatGrid(t, 3)

	s, err := New("fmm", g)
	require.NoError(t, err)
	assert.IsType(t, &FastMarching{}, s)

	s, err = New("Dijkstra", g)
	require.NoError(t, err)
	assert.IsType(t, &Dijkstra{}, s)

	s, err = New("", g)
	require.NoError(t, err)
	assert.IsType(t, &FastMarching{}, s)

	_, err = New("heat", g)
	assert.ErrorIs(t, err, ErrUnknownSolver)
}

func TestCheckName(t *testing.T) {
	for _, name := range []string{"fmm", "FMM", "dijkstra", ""} {
		assert.NoError(t, CheckName(name), name)
	}
	err := CheckName("heat")
	require.ErrorIs(t, err, ErrUnknownSolver)
	assert.Contains(t, err.Error(), `"heat"`)
}

func TestPropagateValidatesSources(t *testing.T) {
	g := flatGrid(t, 3)
	for name, s := range solvers(g) {
		t.Run(name, func(t *testing.T) {
			_, _, err := ClosestSourceErr(s, VertexPoint(0))
			assert.ErrorIs(t, err, ErrNotPropagated)
			i, d := s.ClosestSource(VertexPoint(0))
			assert.Equal(t, -1, i)
			assert.True(t, math.IsInf(d, 1))

			assert.ErrorIs(t, s.Propagate(nil), ErrNoSources)
			assert.Error(t, s.Propagate([]SurfacePoint{VertexPoint(99)}))
			assert.Error(t, s.Propagate([]SurfacePoint{EdgePoint(0, 1.5)}))
			assert.Error(t, s.Propagate([]SurfacePoint{EdgePoint(-1, 0.5)}))

			require.NoError(t, s.Propagate([]SurfacePoint{VertexPoint(4)}))
			_, _, err = ClosestSourceErr(s, VertexPoint(0))
			assert.NoError(t, err)
		})
	}
}

func TestVertexSource(t *testing.T) {
	g := flatGrid(t, 11)
	center := 5*11 + 5
	origin := g.Position(center)

	fmm := NewFastMarching(g)
	dij := NewDijkstra(g)
	require.NoError(t, fmm.Propagate([]SurfacePoint{VertexPoint(center)}))
	require.NoError(t, dij.Propagate([]SurfacePoint{VertexPoint(center)}))

	i, d := fmm.ClosestSource(VertexPoint(center))
	assert.Equal(t, 0, i)
	assert.Equal(t, 0.0, d)

	var fmmErr, dijErr float64
	for v := 0; v < g.Mesh().NVertices(); v++ {
		euclid := g.Position(v).Distance(origin)
		_, df := fmm.ClosestSource(VertexPoint(v))
		_, dd := dij.ClosestSource(VertexPoint(v))

		assert.LessOrEqual(t, df, dd+1e-9, "vertex %d: fast marching above edge distance", v)
		assert.GreaterOrEqual(t, dd, euclid-1e-9, "vertex %d: edge path shorter than a straight line", v)
		assert.GreaterOrEqual(t, df, 0.0)
		fmmErr += math.Abs(df - euclid)
		dijErr += math.Abs(dd - euclid)
	}
	assert.Less(t, fmmErr, dijErr, "fast marching should be closer to the straight-line distance")
}

func TestLineSourceOnFlatGrid(t *testing.T) {
	g := flatGrid(t, 11)
	const cut = 0.55
	sources := cutAtX(g, cut)
	require.NotEmpty(t, sources)

	for name, s := range solvers(g) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Propagate(sources))
			for v := 0; v < g.Mesh().NVertices(); v++ {
				want := math.Abs(g.Position(v).X - cut)
				i, d := s.ClosestSource(VertexPoint(v))
				assert.InDelta(t, want, d, 1e-6, "vertex %d at %v", v, g.Position(v))
				assert.GreaterOrEqual(t, i, 0)
				assert.Less(t, i, len(sources))
			}
		})
	}
}

// Vertex c sees the line source x = 0 through an obtuse corner whose far
// corner a is reached after c. Splitting the corner at p gives the exact
// distance where edge updates overshoot.
func TestObtuseCornerIsSplit(t *testing.T) {
	faces := [][3]int{{0, 2, 1}, {1, 2, 3}, {2, 4, 3}, {5, 4, 2}}
	m, err := mesh.New(faces, 6)
	require.NoError(t, err)
	g, err := mesh.NewGeometry(m, []geometry.Vector3{
		{X: 0, Y: 0},   // source
		{X: 0, Y: 2},   // source
		{X: 1, Y: 0.5}, // b
		{X: 1, Y: 1.8}, // p
		{X: 2.3, Y: 2}, // a
		{X: 2, Y: 1},   // c
	})
	require.NoError(t, err)
	sources := []SurfacePoint{VertexPoint(0), VertexPoint(1)}

	fmm := NewFastMarching(g)
	require.NoError(t, fmm.Propagate(sources))
	dist := VertexDistances(fmm, m.NVertices())
	assert.InDelta(t, 1.0, dist[2], 1e-9)
	assert.InDelta(t, 1.0, dist[3], 1e-9)
	assert.InDelta(t, 2.0, dist[5], 1e-9)

	dij := NewDijkstra(g)
	require.NoError(t, dij.Propagate(sources))
	_, d := dij.ClosestSource(VertexPoint(5))
	assert.Greater(t, d, 2.1)
}

func TestUnfoldFindsSplitVertex(t *testing.T) {
	faces := [][3]int{{0, 1, 2}, {1, 3, 2}}
	m, err := mesh.New(faces, 4)
	require.NoError(t, err)
	g, err := mesh.NewGeometry(m, []geometry.Vector3{
		{X: 0, Y: 0}, {X: 2, Y: -1}, {X: -2, Y: -1}, {X: 0, Y: -3},
	})
	require.NoError(t, err)
	fmm := NewFastMarching(g)

	// The corner at vertex 0 opens 126.87 degrees; vertex 3 sits on its
	// bisector.
	r5 := math.Sqrt(5)
	found := false
	for he := 0; he < m.NHalfedges(); he++ {
		if m.IsBoundary(he) || m.Tail(he) != 0 {
			continue
		}
		found = true
		p, ea, eb, ep, ok := fmm.unfold(he)
		require.True(t, ok)
		assert.Equal(t, 3, p)
		assert.InDelta(t, r5, ea.X, 1e-12)
		assert.InDelta(t, 0, ea.Y, 1e-12)
		assert.InDelta(t, -3/r5, eb.X, 1e-12)
		assert.InDelta(t, 4/r5, eb.Y, 1e-12)
		assert.InDelta(t, 3/r5, ep.X, 1e-12)
		assert.InDelta(t, 6/r5, ep.Y, 1e-12)
	}
	assert.True(t, found)

	// A regular grid has no obtuse corners.
	grid := flatGrid(t, 3)
	fmm = NewFastMarching(grid)
	for he := 0; he < grid.Mesh().NHalfedges(); he++ {
		if grid.Mesh().IsBoundary(he) {
			continue
		}
		_, _, _, _, ok := fmm.unfold(he)
		assert.False(t, ok, "halfedge %d", he)
	}
	assert.Empty(t, fmm.obtuseSplits())
}

func TestLineSourceOnJitteredGrid(t *testing.T) {
	g := flatGrid(t, 21)
	rng := rand.New(rand.NewSource(7))
	h := 1.0 / 20
	for j := 1; j < 20; j++ {
		for i := 1; i < 20; i++ {
			p := &g.Positions[j*21+i]
			p.X += (rng.Float64() - 0.5) * 0.6 * h
			p.Y += (rng.Float64() - 0.5) * 0.6 * h
		}
	}
	const cut = 0.503
	sources := cutAtX(g, cut)
	require.NotEmpty(t, sources)

	fmm := NewFastMarching(g)
	dij := NewDijkstra(g)
	require.NoError(t, fmm.Propagate(sources))
	require.NoError(t, dij.Propagate(sources))

	var fmmErr, dijErr float64
	for v := 0; v < g.Mesh().NVertices(); v++ {
		want := math.Abs(g.Position(v).X - cut)
		_, df := fmm.ClosestSource(VertexPoint(v))
		_, dd := dij.ClosestSource(VertexPoint(v))
		fmmErr += math.Abs(df - want)
		dijErr += math.Abs(dd - want)
	}
	assert.Less(t, fmmErr, dijErr/2)
}

func TestEdgeQueries(t *testing.T) {
	g := flatGrid(t, 5)
	sources := cutAtX(g, 0.3)

	for name, s := range solvers(g) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Propagate(sources))
			for i, src := range sources {
				j, d := s.ClosestSource(src)
				assert.Equal(t, 0.0, d, "source %d", i)
				assert.Equal(t, i, j)
			}

			// Halfway along a horizontal edge from x=0.5 to x=0.75.
			m := g.Mesh()
			for e := 0; e < m.NEdges(); e++ {
				a, b := m.EdgeVertices(e)
				pa, pb := g.Position(a), g.Position(b)
				if pa.Y == pb.Y && math.Min(pa.X, pb.X) == 0.5 && math.Max(pa.X, pb.X) == 0.75 {
					_, d := s.ClosestSource(EdgePoint(e, 0.5))
					assert.InDelta(t, 0.325, d, 1e-9)
					break
				}
			}
		})
	}
}

func TestDisconnectedComponentIsUnreachable(t *testing.T) {
	m, err := mesh.New([][3]int{{0, 1, 2}, {3, 4, 5}}, 6)
	require.NoError(t, err)
	g, err := mesh.NewGeometry(m, []geometry.Vector3{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1},
		{X: 5, Y: 0}, {X: 6, Y: 0}, {X: 5, Y: 1},
	})
	require.NoError(t, err)

	for name, s := range solvers(g) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Propagate([]SurfacePoint{VertexPoint(0)}))
			dist := VertexDistances(s, m.NVertices())
			assert.Equal(t, 0.0, dist[0])
			assert.InDelta(t, 1.0, dist[1], 1e-12)
			for v := 3; v < 6; v++ {
				assert.True(t, math.IsInf(dist[v], 1), "vertex %d", v)
			}
		})
	}
}

func TestPropagateReplacesPreviousResult(t *testing.T) {
	g := flatGrid(t, 5)
	for name, s := range solvers(g) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Propagate([]SurfacePoint{VertexPoint(0)}))
			require.NoError(t, s.Propagate([]SurfacePoint{VertexPoint(24)}))

			_, d := s.ClosestSource(VertexPoint(24))
			assert.Equal(t, 0.0, d)
			_, d = s.ClosestSource(VertexPoint(0))
			assert.Greater(t, d, 1.0)
		})
	}
}

func TestSurfacePointPosition(t *testing.T) {
	g := flatGrid(t, 2)
	a, b := g.Mesh().EdgeVertices(0)
	p := EdgePoint(0, 0.25).Position(g)

	assert.Equal(t, g.Position(a).Lerp(g.Position(b), 0.25), p)
	assert.Equal(t, g.Position(3), VertexPoint(3).Position(g))
	assert.Equal(t, "vertex 3", VertexPoint(3).String())
}
