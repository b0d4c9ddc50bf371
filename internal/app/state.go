package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/geoplane/internal/plane"
	"github.com/philipparndt/geoplane/internal/view"
	"github.com/philipparndt/geoplane/pkg/analysis"
	"github.com/philipparndt/geoplane/pkg/geometry"
	"github.com/philipparndt/geoplane/pkg/mesh"
	"github.com/philipparndt/geoplane/pkg/watcher"
)

// CameraState holds all camera-related state
type CameraState struct {
	camera        rl.Camera3D
	distance      float32
	angleX        float32
	angleY        float32
	target        rl.Vector3 // Current camera target (can be panned)
	defaultDist   float32    // Default camera distance (for reset)
	defaultAngleX float32
	defaultAngleY float32
}

// ModelData holds the GPU side of the loaded mesh
type ModelData struct {
	geom        *mesh.Geometry
	mesh        rl.Mesh
	material    rl.Material
	uploaded    bool
	center      rl.Vector3 // Model center
	size        float32    // Model size (max dimension)
	stats       *analysis.MeshResult
	colorsDirty bool // Vertex colors must be rebuilt before the next draw

	// Cut curve segments cached per intersection result
	cut         *plane.Result
	cutSegments [][2]geometry.Vector3
}

// QuantityState holds the scalar fields handed over by the session
type QuantityState struct {
	vertex map[string][]float64
	edge   map[string][]float64
	shown  string // Vertex quantity used for coloring
}

// ViewSettings holds display settings
type ViewSettings struct {
	showWireframe bool
	showFilled    bool
	showSources   bool
	showPlane     bool
	showPanel     bool
}

// InteractionState holds mouse and interaction state
type InteractionState struct {
	hoveredVertex int // -1 when the cursor is not over the mesh
	mouseDownPos  rl.Vector2
	mouseMoved    bool
	isPanning     bool
	overPanel     bool // Mouse input belongs to the control panel this frame
	pressOnPanel  bool // The left button went down over the panel
}

// FileWatchState holds file watching and reload state
type FileWatchState struct {
	watcher *watcher.Watcher
}

// Panel fields that take keyboard focus
const (
	focusNone = iota - 1
	focusNormalX
	focusNormalY
	focusNormalZ
	focusFilename
)

// Sliders of the control panel
const (
	sliderNone = iota - 1
	sliderPlaneHeight
	sliderPlaneThickness
)

// PanelState holds the control panel widgets
type PanelState struct {
	bounds       rl.Rectangle
	normal       [3]view.TextField
	filename     view.TextField
	fields       [focusFilename + 1]rl.Rectangle // Last drawn bounds per focusable field
	focus        int
	activeSlider int
}

// UIState holds UI-related state
type UIState struct {
	font   rl.Font
	toasts *view.Toasts
}
