package app

import (
	"fmt"
	"math"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/geoplane/internal/config"
	"github.com/philipparndt/geoplane/internal/session"
	"github.com/philipparndt/geoplane/internal/view"
	"github.com/philipparndt/geoplane/pkg/geodesic"
)

const (
	panelWidth         = 330.0
	panelPadding       = 15.0
	panelTitleHeight   = 30.0
	rowHeight          = 26.0
	sliderWidth        = 190.0
	sliderTrackHeight  = 8.0
	sliderHandleRadius = 6.0
	fieldHeight        = 22.0
)

var (
	panelBg        = rl.NewColor(20, 25, 35, 230)
	panelBorder    = rl.NewColor(80, 160, 255, 255)
	panelTitle     = rl.NewColor(100, 200, 255, 255)
	widgetBg       = rl.NewColor(40, 45, 55, 255)
	widgetHover    = rl.NewColor(50, 55, 65, 255)
	separatorColor = rl.NewColor(60, 80, 120, 150)
	sliderColor    = rl.NewColor(80, 160, 255, 255)
)

// drawPanel renders the control panel and queues the commands it triggers
func (app *App) drawPanel() {
	if !app.View.showPanel {
		app.Panel.bounds = rl.Rectangle{}
		return
	}

	screenWidth := float32(rl.GetScreenWidth())
	panelX := screenWidth - panelWidth - 20
	panelY := float32(20)
	panelHeight := float32(500)

	app.Panel.bounds = rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth, Height: panelHeight}
	rl.DrawRectangleRounded(app.Panel.bounds, 0.05, 8, panelBg)
	rl.DrawRectangleRoundedLines(app.Panel.bounds, 0.05, 8, panelBorder)

	// A click outside the focused field commits it
	if app.Panel.focus != focusNone && rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		if !rl.CheckCollisionPointRec(rl.GetMousePosition(), app.fieldBounds(app.Panel.focus)) {
			app.commitFocus()
		}
	}
	app.refreshFields()

	x := panelX + panelPadding
	innerWidth := float32(panelWidth - 2*panelPadding)
	y := panelY + 8

	app.text("Geodesic Distance from Plane", x, y, 16, panelTitle)
	y = panelY + panelTitleHeight
	app.separator(x, y, innerWidth)
	y += 10

	// Plane normal
	app.text("Plane Normal Direction:", x, y, 12, rl.LightGray)
	y += 18
	fieldWidth := (innerWidth - 2*8) / 3
	for i, axis := range []string{"X", "Y", "Z"} {
		bounds := rl.Rectangle{X: x + float32(i)*(fieldWidth+8), Y: y, Width: fieldWidth, Height: fieldHeight}
		app.textBox(bounds, &app.Panel.normal[i], focusNormalX+i, axis)
	}
	y += fieldHeight + 14

	// Plane height
	height := app.slider(x, y, "Plane Height", app.state.Plane.Offset, config.MinHeight, config.MaxHeight, sliderPlaneHeight)
	if height != app.state.Plane.Offset {
		app.state.SetHeight(height)
	}
	y += rowHeight + 8

	// Plane thickness is stored but no computation reads it
	thickness := app.slider(x, y, "Plane Thickness (unused)", app.state.Thickness, config.MinThickness, config.MaxThickness, sliderPlaneThickness)
	if thickness != app.state.Thickness {
		app.state.SetThickness(thickness)
	}
	y += rowHeight + 12

	app.separator(x, y, innerWidth)
	y += 10

	if app.button(rl.Rectangle{X: x, Y: y, Width: innerWidth, Height: fieldHeight + 4}, "Compute Geodesics from Plane") {
		app.queue(session.Intent{Action: session.ActionRecompute})
	}
	y += rowHeight + 6

	engineText := fmt.Sprintf("Engine: %s", app.state.Engine)
	if app.button(rl.Rectangle{X: x, Y: y, Width: innerWidth, Height: fieldHeight}, engineText) {
		app.toggleEngine()
	}
	y += rowHeight + 8

	app.separator(x, y, innerWidth)
	y += 10

	// Presets
	app.text("Quick Plane Presets:", x, y, 12, rl.LightGray)
	y += 18
	for _, preset := range session.Presets {
		if app.button(rl.Rectangle{X: x, Y: y, Width: innerWidth, Height: fieldHeight}, preset.Label()) {
			app.queue(session.Intent{Action: session.ActionPreset, Preset: preset})
		}
		y += rowHeight
	}
	y += 6

	app.separator(x, y, innerWidth)
	y += 10

	// Export
	app.text("Export Geodesic Distances:", x, y, 12, rl.LightGray)
	y += 18
	app.textBox(rl.Rectangle{X: x, Y: y, Width: innerWidth, Height: fieldHeight}, &app.Panel.filename, focusFilename, "")
	y += fieldHeight + 8
	if app.button(rl.Rectangle{X: x, Y: y, Width: innerWidth, Height: fieldHeight + 4}, "Export to Text File") {
		app.queue(session.Intent{Action: session.ActionExport})
	}
	y += rowHeight + 10

	// Shrink the panel to its content
	app.Panel.bounds.Height = y - panelY
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		app.Panel.activeSlider = sliderNone
	}
}

func (app *App) text(s string, x, y, size float32, c rl.Color) {
	rl.DrawTextEx(app.UI.font, s, rl.Vector2{X: x, Y: y}, size, 1, c)
}

func (app *App) separator(x, y, width float32) {
	rl.DrawLineEx(rl.Vector2{X: x, Y: y}, rl.Vector2{X: x + width, Y: y}, 1, separatorColor)
}

// button draws a push button and reports whether it was clicked this frame
func (app *App) button(bounds rl.Rectangle, label string) bool {
	hovered := rl.CheckCollisionPointRec(rl.GetMousePosition(), bounds)
	bg := widgetBg
	if hovered {
		bg = widgetHover
	}
	rl.DrawRectangleRounded(bounds, 0.3, 8, bg)
	rl.DrawRectangleRoundedLines(bounds, 0.3, 8, panelBorder)

	size := rl.MeasureTextEx(app.UI.font, label, 12, 1)
	app.text(label, bounds.X+(bounds.Width-size.X)/2, bounds.Y+(bounds.Height-size.Y)/2, 12, rl.White)

	return hovered && rl.IsMouseButtonPressed(rl.MouseLeftButton) && app.Panel.activeSlider == sliderNone
}

// textBox draws a single line input; clicking it takes keyboard focus
func (app *App) textBox(bounds rl.Rectangle, field *view.TextField, id int, caption string) {
	app.setFieldBounds(id, bounds)

	focused := app.Panel.focus == id
	hovered := rl.CheckCollisionPointRec(rl.GetMousePosition(), bounds)
	if hovered && rl.IsMouseButtonPressed(rl.MouseLeftButton) && !focused {
		app.setFocus(id)
		focused = true
	}

	bg := widgetBg
	if hovered || focused {
		bg = widgetHover
	}
	border := separatorColor
	if focused {
		border = rl.Yellow
	}
	rl.DrawRectangleRec(bounds, bg)
	rl.DrawRectangleLinesEx(bounds, 1, border)

	textX := bounds.X + 5
	if caption != "" {
		app.text(caption, textX, bounds.Y+5, 12, panelTitle)
		textX += 14
	}

	shown := field.Text
	if focused && int(rl.GetTime()*2)%2 == 0 {
		shown += "_"
	}
	app.text(shown, textX, bounds.Y+5, 12, rl.White)
}

// slider draws a horizontal slider and returns its (possibly dragged) value
func (app *App) slider(x, y float32, label string, value, lo, hi float64, id int) float64 {
	app.text(label, x, y, 12, rl.LightGray)

	trackX := x
	trackY := y + 18
	track := rl.Rectangle{X: trackX, Y: trackY, Width: sliderWidth, Height: sliderTrackHeight}
	grab := rl.Rectangle{
		X:      trackX - sliderHandleRadius,
		Y:      trackY - sliderHandleRadius,
		Width:  sliderWidth + sliderHandleRadius*2,
		Height: sliderTrackHeight + sliderHandleRadius*2,
	}

	mouse := rl.GetMousePosition()
	hovered := rl.CheckCollisionPointRec(mouse, grab)
	if hovered && rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.Panel.activeSlider = id
	}
	dragging := app.Panel.activeSlider == id && rl.IsMouseButtonDown(rl.MouseLeftButton)
	if dragging {
		value = view.SliderValue(float64(mouse.X), float64(trackX), sliderWidth, lo, hi)
	}

	bg := widgetBg
	if hovered {
		bg = widgetHover
	}
	rl.DrawRectangleRounded(track, 0.5, 8, bg)

	handleX := float32(view.SliderPosition(value, float64(trackX), sliderWidth, lo, hi))
	fill := sliderColor
	fill.A = 100
	rl.DrawRectangleRounded(rl.Rectangle{X: trackX, Y: trackY, Width: handleX - trackX, Height: sliderTrackHeight}, 0.5, 8, fill)

	handleColor := sliderColor
	if dragging {
		handleColor = rl.White
	} else if hovered {
		// Brighten on hover
		handleColor.R = uint8(math.Min(float64(handleColor.R)+30, 255))
		handleColor.G = uint8(math.Min(float64(handleColor.G)+30, 255))
		handleColor.B = uint8(math.Min(float64(handleColor.B)+30, 255))
	}
	handleY := trackY + sliderTrackHeight/2
	rl.DrawCircleV(rl.Vector2{X: handleX, Y: handleY}, sliderHandleRadius, handleColor)
	rl.DrawCircleLines(int32(handleX), int32(handleY), sliderHandleRadius, rl.NewColor(255, 255, 255, 150))

	app.text(fmt.Sprintf("%.3f", value), trackX+sliderWidth+12, trackY-3, 12, rl.LightGray)
	return value
}

// toggleEngine switches between the available geodesic solvers
func (app *App) toggleEngine() {
	next := geodesic.DijkstraName
	if strings.EqualFold(app.state.Engine, geodesic.DijkstraName) {
		next = geodesic.FastMarchingName
	}
	if app.state.SetEngine(next) == nil {
		app.queue(session.Intent{Action: session.ActionRecompute})
	}
}

// focusedField returns the text field with keyboard focus, if any
func (app *App) focusedField() *view.TextField {
	switch app.Panel.focus {
	case focusNormalX, focusNormalY, focusNormalZ:
		return &app.Panel.normal[app.Panel.focus-focusNormalX]
	case focusFilename:
		return &app.Panel.filename
	}
	return nil
}

func (app *App) setFocus(id int) {
	for i := range app.Panel.normal {
		app.Panel.normal[i].Active = false
	}
	app.Panel.filename.Active = false

	app.Panel.focus = id
	if field := app.focusedField(); field != nil {
		field.Active = true
	}
}

// commitFocus applies the edit of the focused field and drops focus
func (app *App) commitFocus() {
	switch app.Panel.focus {
	case focusNormalX, focusNormalY, focusNormalZ:
		n, err := view.VectorFields(app.Panel.normal)
		if err != nil {
			app.Warning(fmt.Sprintf("Invalid plane normal: %v", err))
		} else {
			// Zero vectors are rejected with a warning by the session
			_ = app.state.SetNormal(n)
		}
	case focusFilename:
		name := strings.TrimSpace(app.Panel.filename.Text)
		if name == "" {
			app.Warning("Export filename must not be empty")
		} else {
			app.state.ExportFilename = name
		}
	}

	app.setFocus(focusNone)
	app.refreshFields()
}

// refreshFields shows the session values in every field that is not being
// edited
func (app *App) refreshFields() {
	editingNormal := app.Panel.focus >= focusNormalX && app.Panel.focus <= focusNormalZ
	if !editingNormal {
		view.SetVectorFields(&app.Panel.normal, app.state.Plane.Normal)
	}
	if app.Panel.focus != focusFilename {
		app.Panel.filename.Text = app.state.ExportFilename
	}
}

// fieldBounds remembers where each text field was drawn last frame
func (app *App) fieldBounds(id int) rl.Rectangle {
	if id < 0 || id >= len(app.Panel.fields) {
		return rl.Rectangle{}
	}
	return app.Panel.fields[id]
}

func (app *App) setFieldBounds(id int, bounds rl.Rectangle) {
	if id >= 0 && id < len(app.Panel.fields) {
		app.Panel.fields[id] = bounds
	}
}
