package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// setupCamera frames the current model
func (app *App) setupCamera() {
	distance := app.Model.size * 2.0
	if distance <= 0 {
		distance = 5
	}

	app.Camera.target = app.Model.center
	app.Camera.distance = distance
	app.Camera.angleX = 0.3
	app.Camera.angleY = 0.3

	// Save default camera settings for reset
	app.Camera.defaultDist = distance
	app.Camera.defaultAngleX = 0.3
	app.Camera.defaultAngleY = 0.3

	app.Camera.camera = rl.Camera3D{
		Position:   rl.Vector3{X: 0, Y: 0, Z: distance},
		Target:     app.Camera.target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}
}

// resetCameraView resets the camera to the default view
func (app *App) resetCameraView() {
	app.Camera.distance = app.Camera.defaultDist
	app.Camera.angleX = app.Camera.defaultAngleX
	app.Camera.angleY = app.Camera.defaultAngleY
	app.Camera.target = app.Model.center
}

// setCameraView looks at the model center from fixed angles
func (app *App) setCameraView(angleX, angleY float32) {
	app.Camera.angleX = angleX
	app.Camera.angleY = angleY
	app.Camera.target = app.Model.center
}

// maxPitch keeps the view direction off the camera up vector
const maxPitch = math.Pi/2 - 0.01

func (app *App) setCameraTopView()    { app.setCameraView(maxPitch, 0) }
func (app *App) setCameraBottomView() { app.setCameraView(-maxPitch, 0) }

func (app *App) setCameraFrontView() { app.setCameraView(0, 0) }
func (app *App) setCameraBackView()  { app.setCameraView(0, math.Pi) }
func (app *App) setCameraLeftView()  { app.setCameraView(0, -math.Pi/2) }
func (app *App) setCameraRightView() { app.setCameraView(0, math.Pi/2) }

// updateCamera updates camera position based on angles
func (app *App) updateCamera() {
	c := &app.Camera
	x := c.distance * float32(math.Cos(float64(c.angleX))) * float32(math.Sin(float64(c.angleY)))
	y := c.distance * float32(math.Sin(float64(c.angleX)))
	z := c.distance * float32(math.Cos(float64(c.angleX))) * float32(math.Cos(float64(c.angleY)))

	c.camera.Position = rl.Vector3{
		X: c.target.X + x,
		Y: c.target.Y + y,
		Z: c.target.Z + z,
	}
	c.camera.Target = c.target
}

// doPan performs camera panning based on mouse delta
func (app *App) doPan(delta rl.Vector2) {
	c := &app.Camera

	// Calculate camera right and up vectors for panning
	forward := rl.Vector3Normalize(rl.Vector3Subtract(c.target, c.camera.Position))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, c.camera.Up))
	up := rl.Vector3Normalize(rl.Vector3CrossProduct(right, forward))

	// Pan speed based on distance from target
	panSpeed := c.distance * 0.001

	rightMove := rl.Vector3Scale(right, -delta.X*panSpeed)
	upMove := rl.Vector3Scale(up, delta.Y*panSpeed)

	c.target = rl.Vector3Add(c.target, rightMove)
	c.target = rl.Vector3Add(c.target, upMove)
}
