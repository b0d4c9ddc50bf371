package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/geoplane/internal/session"
	"github.com/philipparndt/geoplane/internal/view"
	"github.com/philipparndt/geoplane/pkg/geometry"
)

var (
	wireframeColor  = rl.NewColor(100, 100, 100, 200) // Semi-transparent dark gray
	sourceEdgeColor = rl.NewColor(255, 140, 40, 255)
	cutCurveColor   = rl.NewColor(255, 60, 60, 255)
	planeColor      = rl.NewColor(80, 160, 255, 40)
)

func toRL(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// drawWireframe draws every mesh edge once
func (app *App) drawWireframe() {
	g := app.Model.geom
	m := g.Mesh()
	for e := 0; e < m.NEdges(); e++ {
		a, b := m.EdgeVertices(e)
		rl.DrawLine3D(toRL(g.Position(a)), toRL(g.Position(b)), wireframeColor)
	}
}

// drawSourceEdges highlights the edges the plane crosses
func (app *App) drawSourceEdges() {
	indicator := app.Quantities.edge[session.SourceEdgesQuantity]
	g := app.Model.geom
	m := g.Mesh()
	if len(indicator) != m.NEdges() {
		return
	}

	for e, on := range indicator {
		if on == 0 {
			continue
		}
		a, b := m.EdgeVertices(e)
		rl.DrawLine3D(toRL(g.Position(a)), toRL(g.Position(b)), sourceEdgeColor)
	}
}

// drawCutCurve draws the plane/mesh intersection using thin cylinders for
// better visibility.
func (app *App) drawCutCurve() {
	cut := app.state.Cut()
	if cut == nil || app.state.Geometry != app.Model.geom {
		return
	}

	if cut != app.Model.cut {
		app.Model.cut = cut
		app.Model.cutSegments = cut.Segments(app.Model.geom)
	}

	thickness := app.Camera.distance * 0.0008 // Scale with camera distance for constant screen thickness
	for _, seg := range app.Model.cutSegments {
		rl.DrawCylinderEx(toRL(seg[0]), toRL(seg[1]), thickness, thickness, 6, cutCurveColor)
	}
}

// drawPlane draws the cutting plane as a translucent square around the model
func (app *App) drawPlane() {
	center := geometry.NewVector3(float64(app.Model.center.X), float64(app.Model.center.Y), float64(app.Model.center.Z))
	quad := view.PlaneQuad(app.state.Plane, center, float64(app.Model.size)*1.5)

	v1, v2, v3, v4 := toRL(quad[0]), toRL(quad[1]), toRL(quad[2]), toRL(quad[3])

	// Both windings so the plane is visible from either side
	rl.DrawTriangle3D(v1, v2, v3, planeColor)
	rl.DrawTriangle3D(v1, v3, v4, planeColor)
	rl.DrawTriangle3D(v3, v2, v1, planeColor)
	rl.DrawTriangle3D(v4, v3, v1, planeColor)

	borderColor := planeColor
	borderColor.A = 150
	rl.DrawLine3D(v1, v2, borderColor)
	rl.DrawLine3D(v2, v3, borderColor)
	rl.DrawLine3D(v3, v4, borderColor)
	rl.DrawLine3D(v4, v1, borderColor)
}

// drawHoveredVertex marks the vertex under the cursor
func (app *App) drawHoveredVertex() {
	v := app.Interaction.hoveredVertex
	if v < 0 {
		return
	}
	radius := app.Camera.distance * 0.004
	rl.DrawSphere(toRL(app.Model.geom.Position(v)), radius, rl.Yellow)
}
