package app

import (
	"fmt"
	"math"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/geoplane/internal/view"
	"github.com/philipparndt/geoplane/pkg/analysis"
	"github.com/philipparndt/geoplane/version"
)

// drawUI draws the 2D overlay: info block, probe, notifications and panel
func (app *App) drawUI() {
	y := float32(10)
	lineHeight := float32(20)
	fontSize16 := float32(16)
	fontSize14 := float32(14)
	fontSize12 := float32(12)

	// === MESH ===
	rl.DrawTextEx(app.UI.font, "Mesh:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
	y += lineHeight
	rl.DrawTextEx(app.UI.font, fmt.Sprintf("  File: %s", filepath.Base(app.state.Path)), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
	y += lineHeight
	if stats := app.Model.stats; stats != nil {
		rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Vertices: %d | Edges: %d | Faces: %d", stats.VertexCount, stats.EdgeCount, stats.FaceCount), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
		y += lineHeight
		rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Surface Area: %.4f", stats.SurfaceArea), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
		y += lineHeight
		rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Size: %.3f x %.3f x %.3f", stats.Dimensions.X, stats.Dimensions.Y, stats.Dimensions.Z), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
		y += lineHeight
	}
	y += lineHeight

	// === DISTANCES ===
	rl.DrawTextEx(app.UI.font, "Geodesic Distance:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
	y += lineHeight
	if app.state.HasDistances() {
		stats := analysis.AnalyzeDistances(app.state.Distances())
		sources := 0
		if cut := app.state.Cut(); cut != nil {
			sources = cut.Count()
		}
		rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Sources: %d edge intersections", sources), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
		y += lineHeight
		rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Range: %.4f .. %.4f", stats.Min, stats.Max), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
		y += lineHeight
		rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Mean: %.4f | Median: %.4f", stats.Mean, stats.Median), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
		y += lineHeight
		if stats.Unreachable > 0 {
			rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Unreachable: %d vertices", stats.Unreachable), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.Orange)
			y += lineHeight
		}
		rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Engine: %s (%.1f ms)", app.state.Engine, float64(app.state.LastDuration.Microseconds())/1000), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.NewColor(100, 200, 255, 255))
		y += lineHeight
	} else {
		rl.DrawTextEx(app.UI.font, "  Not computed", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.Gray)
		y += lineHeight
	}
	y += lineHeight

	// === VIEW ===
	rl.DrawTextEx(app.UI.font, "View:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
	y += lineHeight
	rl.DrawTextEx(app.UI.font, "  Home: Reset | T: Top | B: Bottom", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
	y += lineHeight
	rl.DrawTextEx(app.UI.font, "  1: Front | 2: Back | 3: Left | 4: Right", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
	y += lineHeight
	rl.DrawTextEx(app.UI.font, "  W: Wireframe | F: Fill | S: Sources | P: Plane | H: Panel", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
	y += lineHeight * 2

	// === NAVIGATE ===
	rl.DrawTextEx(app.UI.font, "Navigate:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
	y += lineHeight
	rl.DrawTextEx(app.UI.font, "  Left Drag: Rotate | Shift+Drag: Pan", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
	y += lineHeight
	rl.DrawTextEx(app.UI.font, "  Mouse Wheel: Zoom | Middle: Pan", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
	y += lineHeight
	rl.DrawTextEx(app.UI.font, "  C/Enter: Compute | Ctrl+E: Export", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)

	app.drawProbe()
	app.drawLegend()
	app.drawToasts()

	// Version and FPS in bottom-left corner
	bottomY := float32(rl.GetScreenHeight()) - 30
	versionText := fmt.Sprintf("v%s", version.GetVersion())
	rl.DrawTextEx(app.UI.font, versionText, rl.Vector2{X: 10, Y: bottomY}, fontSize12, 1, rl.Gray)

	fpsText := fmt.Sprintf("FPS: %d", rl.GetFPS())
	versionWidth := rl.MeasureTextEx(app.UI.font, versionText, fontSize12, 1).X
	rl.DrawTextEx(app.UI.font, fpsText, rl.Vector2{X: 10 + versionWidth + 15, Y: bottomY}, fontSize12, 1, rl.Lime)

	app.drawPanel()
}

// drawProbe labels the hovered vertex with its distance
func (app *App) drawProbe() {
	v := app.Interaction.hoveredVertex
	if v < 0 || app.Interaction.overPanel {
		return
	}

	label := fmt.Sprintf("vertex %d", v)
	if distances := app.state.Distances(); v < len(distances) {
		if math.IsInf(distances[v], 1) {
			label += ": unreachable"
		} else {
			label += fmt.Sprintf(": %.5f", distances[v])
		}
	}

	fontSize := float32(14)
	mouse := rl.GetMousePosition()
	size := rl.MeasureTextEx(app.UI.font, label, fontSize, 1)
	box := rl.Rectangle{X: mouse.X + 16, Y: mouse.Y + 16, Width: size.X + 12, Height: size.Y + 8}
	rl.DrawRectangleRec(box, rl.NewColor(0, 0, 0, 200))
	rl.DrawRectangleLinesEx(box, 1, rl.Yellow)
	rl.DrawTextEx(app.UI.font, label, rl.Vector2{X: box.X + 6, Y: box.Y + 4}, fontSize, 1, rl.Yellow)
}

// drawLegend draws the color bar of the distance field
func (app *App) drawLegend() {
	if !app.state.HasDistances() {
		return
	}
	stats := analysis.AnalyzeDistances(app.state.Distances())

	const steps = 64
	barWidth := float32(240)
	barHeight := float32(12)
	x := (float32(rl.GetScreenWidth()) - barWidth) / 2
	y := float32(rl.GetScreenHeight()) - 50

	step := barWidth / steps
	for i := 0; i < steps; i++ {
		c := view.Viridis(float64(i) / float64(steps-1))
		rl.DrawRectangleRec(rl.Rectangle{X: x + float32(i)*step, Y: y, Width: step + 1, Height: barHeight}, rl.NewColor(c.R, c.G, c.B, c.A))
	}
	rl.DrawRectangleLinesEx(rl.Rectangle{X: x, Y: y, Width: barWidth, Height: barHeight}, 1, rl.Gray)

	fontSize := float32(12)
	lo := fmt.Sprintf("%.3f", stats.Min)
	hi := fmt.Sprintf("%.3f", stats.Max)
	hiWidth := rl.MeasureTextEx(app.UI.font, hi, fontSize, 1).X
	rl.DrawTextEx(app.UI.font, lo, rl.Vector2{X: x, Y: y + barHeight + 4}, fontSize, 1, rl.LightGray)
	rl.DrawTextEx(app.UI.font, hi, rl.Vector2{X: x + barWidth - hiWidth, Y: y + barHeight + 4}, fontSize, 1, rl.LightGray)
}

// drawToasts shows recent notifications stacked above the legend
func (app *App) drawToasts() {
	fontSize := float32(14)
	y := float32(rl.GetScreenHeight()) - 90

	toasts := app.UI.toasts.Active()
	for i := len(toasts) - 1; i >= 0; i-- {
		item := toasts[i]
		alpha := uint8(255 * app.UI.toasts.Fade(item))

		accent := rl.NewColor(100, 200, 255, alpha)
		switch item.Level {
		case view.LevelWarning:
			accent = rl.NewColor(255, 200, 80, alpha)
		case view.LevelError:
			accent = rl.NewColor(255, 90, 90, alpha)
		}

		size := rl.MeasureTextEx(app.UI.font, item.Text, fontSize, 1)
		box := rl.Rectangle{
			X:      (float32(rl.GetScreenWidth()) - size.X - 24) / 2,
			Y:      y - size.Y - 12,
			Width:  size.X + 24,
			Height: size.Y + 12,
		}
		rl.DrawRectangleRounded(box, 0.3, 8, rl.NewColor(20, 25, 35, uint8(float64(alpha)*0.9)))
		rl.DrawRectangleRoundedLines(box, 0.3, 8, accent)
		rl.DrawTextEx(app.UI.font, item.Text, rl.Vector2{X: box.X + 12, Y: box.Y + 6}, fontSize, 1, rl.NewColor(255, 255, 255, alpha))

		y = box.Y - 6
	}
}
