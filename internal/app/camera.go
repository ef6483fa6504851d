package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gobuilding/pkg/geometry"
)

// fitMargin widens the view so a fitted model does not touch the edges.
const fitMargin = 1.5

// setCameraPose places the camera at position looking at target and
// derives the orbit angles from it.
func (app *App) setCameraPose(position, target rl.Vector3) {
	offset := rl.Vector3Subtract(position, target)
	distance := rl.Vector3Length(offset)
	if distance == 0 {
		distance = 1
	}

	app.Camera.target = target
	app.Camera.distance = distance
	app.Camera.angleX = float32(math.Asin(float64(offset.Y / distance)))
	app.Camera.angleY = float32(math.Atan2(float64(offset.X), float64(offset.Z)))
	app.Camera.camera = rl.Camera3D{
		Position:   position,
		Target:     target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       app.cfg.Camera.FOV,
		Projection: rl.CameraPerspective,
	}
}

// resetCamera restores the configured building view
func (app *App) resetCamera() {
	p := app.cfg.Camera.Position
	t := app.cfg.Camera.Target
	app.setCameraPose(rl.Vector3{X: p[0], Y: p[1], Z: p[2]}, rl.Vector3{X: t[0], Y: t[1], Z: t[2]})
}

// fitCamera frames bounds: looks at its center from a distance that fits
// the largest dimension into the field of view, slightly raised.
func (app *App) fitCamera(bounds geometry.BoundingBox) {
	if bounds.Empty() {
		app.resetCamera()
		return
	}

	center := toRaylib(bounds.Center())
	maxDim := float32(bounds.Size().MaxComponent())
	fov := float64(app.cfg.Camera.FOV) * math.Pi / 180
	distance := fitMargin * (maxDim / 2) / float32(math.Tan(fov/2))

	position := rl.Vector3{X: center.X, Y: center.Y + 5, Z: center.Z + distance}
	app.setCameraPose(position, center)
}

// updateCamera updates camera position based on angles
func (app *App) updateCamera() {
	x := app.Camera.distance * float32(math.Cos(float64(app.Camera.angleX))) * float32(math.Sin(float64(app.Camera.angleY)))
	y := app.Camera.distance * float32(math.Sin(float64(app.Camera.angleX)))
	z := app.Camera.distance * float32(math.Cos(float64(app.Camera.angleX))) * float32(math.Cos(float64(app.Camera.angleY)))

	app.Camera.camera.Position = rl.Vector3{
		X: app.Camera.target.X + x,
		Y: app.Camera.target.Y + y,
		Z: app.Camera.target.Z + z,
	}
	app.Camera.camera.Target = app.Camera.target
}

// doPan performs camera panning based on mouse delta
func (app *App) doPan(delta rl.Vector2) {
	// Calculate camera right and up vectors for panning
	forward := rl.Vector3Normalize(rl.Vector3Subtract(app.Camera.target, app.Camera.camera.Position))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, app.Camera.camera.Up))
	up := rl.Vector3Normalize(rl.Vector3CrossProduct(right, forward))

	// Pan speed based on distance from target
	panSpeed := app.Camera.distance * 0.001

	rightMove := rl.Vector3Scale(right, -delta.X*panSpeed)
	upMove := rl.Vector3Scale(up, delta.Y*panSpeed)

	app.Camera.target = rl.Vector3Add(app.Camera.target, rightMove)
	app.Camera.target = rl.Vector3Add(app.Camera.target, upMove)
}

// logCameraPose writes the current pose in the form used by the config file
func (app *App) logCameraPose() {
	p := app.Camera.camera.Position
	t := app.Camera.camera.Target
	app.log.Info().
		Str("position", fmtPose(p)).
		Str("target", fmtPose(t)).
		Msg("camera pose")
	app.notify("Camera: position " + fmtPose(p) + " target " + fmtPose(t))
}

func toRaylib(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func fromRaylib(v rl.Vector3) geometry.Vector3 {
	return geometry.NewVector3(float64(v.X), float64(v.Y), float64(v.Z))
}
