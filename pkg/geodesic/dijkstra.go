package geodesic

import (
	"math"

	"github.com/philipparndt/geoplane/pkg/mesh"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// Dijkstra measures distances along mesh edges. Results are upper bounds of
// the true surface distance; it is mainly useful as a reference.
type Dijkstra struct {
	field
	graph *simple.WeightedUndirectedGraph
}

// NewDijkstra builds the edge graph of g's mesh
func NewDijkstra(g *mesh.Geometry) *Dijkstra {
	m := g.Mesh()
	eg := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for v := 0; v < m.NVertices(); v++ {
		eg.AddNode(simple.Node(v))
	}
	for e := 0; e < m.NEdges(); e++ {
		a, b := m.EdgeVertices(e)
		eg.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(a), T: simple.Node(b), W: g.EdgeLength(e)})
	}
	return &Dijkstra{field: field{geom: g}, graph: eg}
}

// Propagate implements Solver. A temporary root node is linked to every
// seeded vertex so a single-source search covers all sources at once.
func (d *Dijkstra) Propagate(sources []SurfacePoint) error {
	if err := d.reset(sources); err != nil {
		return err
	}
	seeded := d.seeds()

	root := simple.Node(d.geom.Mesh().NVertices())
	d.graph.AddNode(root)
	defer d.graph.RemoveNode(root.ID())

	for v, s := range seeded {
		d.graph.SetWeightedEdge(simple.WeightedEdge{F: root, T: simple.Node(v), W: s.dist})
	}

	shortest := path.DijkstraFrom(root, d.graph)
	for v := range d.dist {
		d.dist[v] = shortest.WeightTo(int64(v))
	}
	d.labelSources(seeded)
	return nil
}
