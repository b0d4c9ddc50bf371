// Package app is the interactive viewer: a raylib window showing the mesh
// colored by geodesic distance, with a control panel for the cutting plane.
package app

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/geoplane/internal/config"
	"github.com/philipparndt/geoplane/internal/session"
	"github.com/philipparndt/geoplane/internal/view"
	"github.com/philipparndt/geoplane/pkg/mesh"
)

type App struct {
	Camera      CameraState
	Model       ModelData
	Quantities  QuantityState
	View        ViewSettings
	Interaction InteractionState
	FileWatch   FileWatchState
	Panel       PanelState
	UI          UIState

	state   *session.State
	intents []session.Intent
}

// Run opens the window for an already loaded mesh and blocks until it is
// closed.
func Run(path string, g *mesh.Geometry, cfg *config.Config) error {
	if cfg == nil {
		cfg = config.Default()
	}

	app := &App{
		Quantities: QuantityState{
			vertex: make(map[string][]float64),
			edge:   make(map[string][]float64),
			shown:  session.DistanceQuantity,
		},
		View: ViewSettings{
			showWireframe: cfg.Window.Wireframe,
			showFilled:    true,
			showSources:   true,
			showPlane:     true,
			showPanel:     true,
		},
		Interaction: InteractionState{hoveredVertex: -1},
		Panel: PanelState{
			focus:        focusNone,
			activeSlider: sliderNone,
			filename:     view.TextField{Max: 255},
		},
		UI: UIState{toasts: view.NewToasts(6*time.Second, 6)},
	}

	state, err := session.New(path, g, cfg, app, app)
	if err != nil {
		return err
	}
	app.state = state
	app.syncPanel()

	// Initialize window
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), fmt.Sprintf("%s - %s", cfg.Window.Title, filepath.Base(path)))
	rl.SetExitKey(0) // ESC leaves text fields instead of closing the window
	rl.SetTargetFPS(60)

	app.UI.font = rl.GetFontDefault()
	app.Model.material = rl.LoadMaterialDefault()
	app.setModel(g, true)

	// Set up file watching
	if err := app.setupFileWatcher(); err != nil {
		log.Printf("warning: failed to set up file watching: %v", err)
		log.Println("auto-reload will not be available")
	} else {
		defer app.FileWatch.watcher.Close()
	}

	// Initial computation with the configured plane
	_ = app.state.Recompute()

	// Main loop
	for !rl.WindowShouldClose() {
		// Check for Ctrl+Q to exit
		ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
		if ctrlPressed && rl.IsKeyPressed(rl.KeyQ) {
			break
		}

		// Reload happens on this goroutine; the watcher only raises a flag
		app.checkReload()

		// Update
		app.handleInput()
		app.updateCamera()
		app.refreshColors()

		// Draw
		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 18, 25, 255))

		rl.BeginMode3D(app.Camera.camera)
		if app.View.showFilled {
			rl.DrawMesh(app.Model.mesh, app.Model.material, rl.MatrixIdentity())
		}
		if app.View.showWireframe {
			app.drawWireframe()
		}
		if app.View.showSources {
			app.drawSourceEdges()
			app.drawCutCurve()
		}
		if app.View.showPlane {
			app.drawPlane()
		}
		app.drawHoveredVertex()
		rl.EndMode3D()

		app.drawUI()
		rl.EndDrawing()

		// Commands collected while drawing the panel run before the next frame
		app.applyIntents()
	}

	// Cleanup
	if app.Model.uploaded {
		rl.UnloadMesh(&app.Model.mesh)
	}
	rl.CloseWindow()
	return nil
}

// applyIntents executes the queued panel commands in order
func (app *App) applyIntents() {
	intents := app.intents
	app.intents = nil
	for _, in := range intents {
		// Failures were already reported through the notifier
		_ = app.state.Apply(in)
	}
}

// queue records a command for execution after the frame
func (app *App) queue(in session.Intent) {
	app.intents = append(app.intents, in)
}

// Info, Warning and Error make the app the session's notifier
func (app *App) Info(msg string) {
	log.Print(msg)
	app.UI.toasts.Info(msg)
}

func (app *App) Warning(msg string) {
	log.Printf("warning: %s", msg)
	app.UI.toasts.Warning(msg)
}

func (app *App) Error(msg string) {
	log.Printf("error: %s", msg)
	app.UI.toasts.Error(msg)
}

// AddVertexScalarQuantity stores a per-vertex field and recolors the mesh
func (app *App) AddVertexScalarQuantity(name string, values []float64) {
	app.Quantities.vertex[name] = values
	if name == app.Quantities.shown {
		app.Model.colorsDirty = true
	}
}

// AddEdgeScalarQuantity stores a per-edge field
func (app *App) AddEdgeScalarQuantity(name string, values []float64) {
	app.Quantities.edge[name] = values
}

// clearQuantities drops every field, used when the mesh is replaced
func (app *App) clearQuantities() {
	app.Quantities.vertex = make(map[string][]float64)
	app.Quantities.edge = make(map[string][]float64)
	app.Model.colorsDirty = true
}

// syncPanel copies the session values into the panel text fields
func (app *App) syncPanel() {
	view.SetVectorFields(&app.Panel.normal, app.state.Plane.Normal)
	app.Panel.filename.Text = app.state.ExportFilename
}
