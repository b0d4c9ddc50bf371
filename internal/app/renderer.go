package app

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/geoplane/internal/view"
	"github.com/philipparndt/geoplane/pkg/analysis"
	"github.com/philipparndt/geoplane/pkg/geometry"
	"github.com/philipparndt/geoplane/pkg/mesh"
)

// baseColor is used while no distance field is shown
var baseColor = color.RGBA{100, 120, 200, 255}

// setModel uploads g and frames it. On reload the camera keeps its
// orientation and follows the change of the model center.
func (app *App) setModel(g *mesh.Geometry, frame bool) {
	bbox := g.BoundingBox()
	center := bbox.Center()
	size := bbox.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))

	newCenter := rl.Vector3{X: float32(center.X), Y: float32(center.Y), Z: float32(center.Z)}
	centerDelta := rl.Vector3Subtract(newCenter, app.Model.center)

	app.Model.geom = g
	app.Model.center = newCenter
	app.Model.size = float32(maxDim)
	app.Model.stats = analysis.AnalyzeMesh(g)
	app.Interaction.hoveredVertex = -1
	app.uploadMesh(nil)

	if frame {
		app.setupCamera()
	} else {
		app.Camera.target = rl.Vector3Add(app.Camera.target, centerDelta)
	}
}

// refreshColors rebuilds the mesh when the shown quantity changed
func (app *App) refreshColors() {
	if !app.Model.colorsDirty {
		return
	}
	app.Model.colorsDirty = false

	values, ok := app.Quantities.vertex[app.Quantities.shown]
	if !ok || len(values) != app.Model.geom.Mesh().NVertices() {
		app.uploadMesh(nil)
		return
	}
	app.uploadMesh(view.ScalarColors(analysis.Normalize(values)))
}

// uploadMesh replaces the GPU mesh. vertexColors may be nil.
func (app *App) uploadMesh(vertexColors []color.RGBA) {
	newMesh := buildRaylibMesh(app.Model.geom, vertexColors)
	if app.Model.uploaded {
		oldMesh := app.Model.mesh
		rl.UnloadMesh(&oldMesh)
	}
	app.Model.mesh = newMesh
	app.Model.uploaded = true
}

// buildRaylibMesh converts the mesh to an unindexed raylib mesh with baked
// lighting, one copy of each corner per face so faces stay flat shaded.
func buildRaylibMesh(g *mesh.Geometry, vertexColors []color.RGBA) rl.Mesh {
	m := g.Mesh()
	triangleCount := m.NFaces()
	vertexCount := triangleCount * 3

	out := rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(triangleCount),
	}

	vertices := make([]float32, vertexCount*3)
	normals := make([]float32, vertexCount*3)
	texcoords := make([]float32, vertexCount*2)
	colors := make([]uint8, vertexCount*4)

	// Light direction for baked lighting
	lightDir := geometry.NewVector3(-0.5, -1.0, -0.5).Normalize()

	idx := 0
	for f := 0; f < triangleCount; f++ {
		normal := g.FaceNormal(f)
		// Min 30% ambient, max 100% diffuse; back faces get the same light
		lightIntensity := math.Max(0.3, math.Abs(normal.Dot(lightDir)))

		for _, v := range m.FaceVertices(f) {
			pos := g.Position(v)
			vertices[idx*3+0] = float32(pos.X)
			vertices[idx*3+1] = float32(pos.Y)
			vertices[idx*3+2] = float32(pos.Z)
			normals[idx*3+0] = float32(normal.X)
			normals[idx*3+1] = float32(normal.Y)
			normals[idx*3+2] = float32(normal.Z)

			c := baseColor
			if vertexColors != nil {
				c = vertexColors[v]
			}
			c = view.Shade(c, 0.35+0.65*lightIntensity)
			colors[idx*4+0] = c.R
			colors[idx*4+1] = c.G
			colors[idx*4+2] = c.B
			colors[idx*4+3] = 255
			idx++
		}
	}

	// Assign mesh data
	if len(vertices) > 0 {
		out.Vertices = &vertices[0]
		out.Normals = &normals[0]
		out.Texcoords = &texcoords[0]
		out.Colors = &colors[0]
	}

	// Upload mesh data to GPU
	rl.UploadMesh(&out, false)
	return out
}
