package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/geoplane/internal/session"
	"github.com/philipparndt/geoplane/pkg/analysis"
	"github.com/philipparndt/geoplane/pkg/geometry"
)

// handleInput processes user input
func (app *App) handleInput() {
	mousePos := rl.GetMousePosition()
	app.Interaction.overPanel = app.View.showPanel && rl.CheckCollisionPointRec(mousePos, app.Panel.bounds)

	if app.Panel.focus != focusNone {
		app.handleTextInput()
	} else {
		app.handleShortcuts()
	}

	app.handleMouse()
}

// handleShortcuts processes keys while no text field has focus
func (app *App) handleShortcuts() {
	// Camera view preset shortcuts
	if rl.IsKeyPressed(rl.KeyHome) {
		app.resetCameraView()
	}
	if rl.IsKeyPressed(rl.KeyT) {
		app.setCameraTopView()
	}
	if rl.IsKeyPressed(rl.KeyB) {
		app.setCameraBottomView()
	}
	if rl.IsKeyPressed(rl.KeyOne) {
		app.setCameraFrontView()
	}
	if rl.IsKeyPressed(rl.KeyTwo) {
		app.setCameraBackView()
	}
	if rl.IsKeyPressed(rl.KeyThree) {
		app.setCameraLeftView()
	}
	if rl.IsKeyPressed(rl.KeyFour) {
		app.setCameraRightView()
	}

	// Display toggles
	if rl.IsKeyPressed(rl.KeyW) {
		app.View.showWireframe = !app.View.showWireframe
	}
	if rl.IsKeyPressed(rl.KeyF) {
		app.View.showFilled = !app.View.showFilled
	}
	if rl.IsKeyPressed(rl.KeyS) {
		app.View.showSources = !app.View.showSources
	}
	if rl.IsKeyPressed(rl.KeyP) {
		app.View.showPlane = !app.View.showPlane
	}
	if rl.IsKeyPressed(rl.KeyH) {
		app.View.showPanel = !app.View.showPanel
	}

	// Commands
	if rl.IsKeyPressed(rl.KeyC) || rl.IsKeyPressed(rl.KeyEnter) {
		app.queue(session.Intent{Action: session.ActionRecompute})
	}
	ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
	if ctrlPressed && rl.IsKeyPressed(rl.KeyE) {
		app.queue(session.Intent{Action: session.ActionExport})
	}
}

// handleTextInput feeds typed characters into the focused text field
func (app *App) handleTextInput() {
	field := app.focusedField()
	if field == nil {
		return
	}

	for r := rl.GetCharPressed(); r > 0; r = rl.GetCharPressed() {
		field.Insert(rune(r))
	}
	if rl.IsKeyPressed(rl.KeyBackspace) {
		field.Backspace()
	}

	switch {
	case rl.IsKeyPressed(rl.KeyEnter), rl.IsKeyPressed(rl.KeyKpEnter):
		app.commitFocus()
	case rl.IsKeyPressed(rl.KeyTab):
		next := app.Panel.focus + 1
		if next > focusFilename {
			next = focusNormalX
		}
		app.commitFocus()
		app.setFocus(next)
	case rl.IsKeyPressed(rl.KeyEscape):
		// Drop the edit
		app.setFocus(focusNone)
	}
}

// handleMouse orbits, pans and zooms the camera and updates the hover probe
func (app *App) handleMouse() {
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.Interaction.mouseDownPos = rl.GetMousePosition()
		app.Interaction.mouseMoved = false
		app.Interaction.pressOnPanel = app.Interaction.overPanel
		// Pan if Shift is pressed
		shiftPressed := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
		app.Interaction.isPanning = shiftPressed
	}

	// The panel owns the mouse while it is under the cursor or a drag started on it
	dragFromPanel := app.Interaction.pressOnPanel && rl.IsMouseButtonDown(rl.MouseLeftButton)
	panelOwnsMouse := app.Interaction.overPanel || dragFromPanel || app.Panel.activeSlider != sliderNone

	if !panelOwnsMouse {
		// Camera panning with Shift + mouse drag or middle mouse button drag
		if (rl.IsMouseButtonDown(rl.MouseLeftButton) && app.Interaction.isPanning) || rl.IsMouseButtonDown(rl.MouseMiddleButton) {
			delta := rl.GetMouseDelta()
			if delta.X != 0 || delta.Y != 0 {
				app.Interaction.mouseMoved = true
				app.doPan(delta)
			}
		} else if rl.IsMouseButtonDown(rl.MouseLeftButton) {
			app.orbit(rl.GetMouseDelta())
		}

		// Zoom with mouse wheel (reduced sensitivity)
		wheel := rl.GetMouseWheelMove()
		if wheel != 0 {
			app.Camera.distance *= 1.0 - wheel*0.03
			minDist := app.Model.size * 0.05
			if app.Camera.distance < minDist {
				app.Camera.distance = minDist
			}
		}
	}

	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		app.Interaction.isPanning = false
	}

	// Update hover probe (only when not dragging)
	if !rl.IsMouseButtonDown(rl.MouseLeftButton) && !app.Interaction.overPanel {
		app.updateHoverVertex()
	} else if app.Interaction.overPanel {
		app.Interaction.hoveredVertex = -1
	}
}

// orbit rotates the camera around its target
func (app *App) orbit(delta rl.Vector2) {
	// Only count as moved if delta is significant (threshold of 1.0 pixels)
	if math.Abs(float64(delta.X)) > 1.0 || math.Abs(float64(delta.Y)) > 1.0 {
		app.Interaction.mouseMoved = true
	}
	if delta.X == 0 && delta.Y == 0 {
		return
	}

	app.Camera.angleY += delta.X * 0.01
	app.Camera.angleX -= delta.Y * 0.01

	// Clamp vertical rotation
	if app.Camera.angleX > 1.5 {
		app.Camera.angleX = 1.5
	}
	if app.Camera.angleX < -1.5 {
		app.Camera.angleX = -1.5
	}
}

// updateHoverVertex finds the vertex nearest to where the mouse ray hits
// the mesh
func (app *App) updateHoverVertex() {
	app.Interaction.hoveredVertex = -1
	if !app.Model.uploaded || app.Model.mesh.VertexCount == 0 {
		return
	}

	ray := rl.GetMouseRay(rl.GetMousePosition(), app.Camera.camera)
	hit := rl.GetRayCollisionMesh(ray, app.Model.mesh, rl.MatrixIdentity())
	if !hit.Hit {
		return
	}

	point := geometry.NewVector3(float64(hit.Point.X), float64(hit.Point.Y), float64(hit.Point.Z))
	v, _ := analysis.NearestVertex(app.Model.geom, point)
	app.Interaction.hoveredVertex = v
}
