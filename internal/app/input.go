package app

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gobuilding/internal/nav"
	"github.com/philipparndt/gobuilding/pkg/geometry"
)

// clickTolerance is the largest mouse travel in pixels still counted as a click.
const clickTolerance = 5.0

// handleInput processes user input
func (app *App) handleInput() {
	if app.UI.dialog.open {
		app.handleDialogInput()
		return
	}

	app.handleKeys()
	app.handleMouse()
}

func (app *App) handleKeys() {
	shiftPressed := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)

	switch {
	case rl.IsKeyPressed(rl.KeyL):
		app.machine.EnterLinkCreate()
	case rl.IsKeyPressed(rl.KeyR):
		app.machine.EnterLinkRemove()
	case rl.IsKeyPressed(rl.KeyEscape):
		app.machine.ExitToIdle()
	case rl.IsKeyPressed(rl.KeyBackspace):
		app.goBack()
	case rl.IsKeyPressed(rl.KeyHome):
		app.resetToBuilding()
	case shiftPressed && rl.IsKeyPressed(rl.KeyC):
		app.removeAllLinks()
	case rl.IsKeyPressed(rl.KeyD):
		app.logCameraPose()
	case rl.IsKeyPressed(rl.KeyW):
		app.View.showWireframe = !app.View.showWireframe
	case rl.IsKeyPressed(rl.KeyF):
		app.View.showFilled = !app.View.showFilled
	}
}

func (app *App) handleMouse() {
	// Track mouse down for click vs drag detection
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.Interaction.mouseDownPos = rl.GetMousePosition()
		app.Interaction.mouseMoved = false
		// Pan if Shift is pressed
		app.Interaction.isPanning = rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	}

	// Camera panning with Shift + mouse drag or middle mouse button drag
	if (rl.IsMouseButtonDown(rl.MouseLeftButton) && app.Interaction.isPanning) || rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			app.Interaction.mouseMoved = true
			app.doPan(delta)
		}
	} else if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		// Camera rotation with mouse drag
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			app.Interaction.mouseMoved = true
			app.Camera.angleY -= delta.X * 0.01
			app.Camera.angleX += delta.Y * 0.01
			limit := float32(math.Pi/2 - 0.01)
			app.Camera.angleX = float32(math.Max(float64(-limit), math.Min(float64(limit), float64(app.Camera.angleX))))
		}
	}

	// Zoom with mouse wheel
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		app.Camera.distance *= 1 - wheel*0.1
		app.Camera.distance = float32(math.Max(0.5, float64(app.Camera.distance)))
	}

	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		dragDistance := rl.Vector2Distance(app.Interaction.mouseDownPos, rl.GetMousePosition())
		if !app.Interaction.mouseMoved && !app.Interaction.isPanning && dragDistance < clickTolerance {
			app.click(rl.GetMousePosition())
		}
		app.Interaction.isPanning = false
	}
}

// click casts a ray through the screen position into the dispatcher
func (app *App) click(pos rl.Vector2) {
	if !app.Interaction.ready {
		return
	}

	ray := rl.GetMouseRay(pos, app.Camera.camera)
	outcome := app.dispatcher.Click(geometry.NewRay(fromRaylib(ray.Position), fromRaylib(ray.Direction)))
	app.log.Debug().Stringer("mode", app.machine.Mode.Get()).Stringer("outcome", outcome).Msg("click")
}

func (app *App) removeAllLinks() {
	n, err := app.store.RemoveAll()
	app.metrics.LinksRemoved(n)
	if err != nil {
		app.notifyError("Failed to clear links", err)
		return
	}
	app.machine.ExitToIdle()
	app.notify(fmt.Sprintf("Removed %d links", n))
}

func modeLabel(mode nav.Mode) string {
	switch mode {
	case nav.LinkCreate:
		return "Click a surface to place a link"
	case nav.LinkRemove:
		return "Click a marker to remove its link"
	default:
		return ""
	}
}

func fmtPose(v rl.Vector3) string {
	return fmt.Sprintf("[%.2f, %.2f, %.2f]", v.X, v.Y, v.Z)
}
