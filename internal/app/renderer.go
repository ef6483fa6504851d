package app

import (
	"math"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gobuilding/internal/loader"
	"github.com/philipparndt/gobuilding/internal/nav"
	"github.com/philipparndt/gobuilding/pkg/geometry"
	"github.com/philipparndt/gobuilding/pkg/stl"
)

var (
	markerColor  = rl.NewColor(255, 80, 80, 255)
	ringColor    = rl.NewColor(255, 220, 120, 255)
	removeColor  = rl.NewColor(255, 40, 40, 255)
	wireColor    = rl.NewColor(100, 100, 100, 200)
	markerRingUp = rl.Vector3{X: 0, Y: 1, Z: 0}
)

// uploadAsset turns a decoded asset into a GPU model (must be on main thread)
func uploadAsset(asset *loader.Asset, scale float32) *sceneModel {
	var model rl.Model
	if asset.Model != nil {
		model = rl.LoadModelFromMesh(stlToRaylibMesh(asset.Model))
	} else {
		model = rl.LoadModel(asset.Path)
	}
	model.Transform = rl.MatrixScale(scale, scale, scale)

	sm := &sceneModel{asset: asset, model: model, scale: scale}
	if asset.Model != nil {
		sm.bounds = asset.Bounds().Scale(float64(scale))
	} else {
		box := rl.GetModelBoundingBox(model)
		sm.bounds = geometry.NewBoundingBox()
		sm.bounds.Extend(fromRaylib(box.Min))
		sm.bounds.Extend(fromRaylib(box.Max))
	}
	return sm
}

func (sm *sceneModel) unload() {
	if sm != nil {
		rl.UnloadModel(sm.model)
	}
}

// raycast hits the model in world space. Triangle assets are tested on
// their decoded triangles; glTF models through raylib's mesh collision.
func (sm *sceneModel) raycast(ray geometry.Ray) (geometry.Hit, bool) {
	if sm == nil {
		return geometry.Hit{}, false
	}
	if sm.asset.Model != nil {
		return sm.asset.Model.RaycastScaled(ray, float64(sm.scale))
	}
	return sm.raycastMeshes(rl.Ray{Position: toRaylib(ray.Origin), Direction: toRaylib(ray.Direction)})
}

func (sm *sceneModel) raycastMeshes(ray rl.Ray) (geometry.Hit, bool) {
	var (
		best  geometry.Hit
		found bool
	)
	if sm.model.MeshCount == 0 {
		return best, false
	}

	meshes := unsafe.Slice(sm.model.Meshes, sm.model.MeshCount)
	for _, mesh := range meshes {
		collision := rl.GetRayCollisionMesh(ray, mesh, sm.model.Transform)
		if !collision.Hit {
			continue
		}
		best, found = geometry.Nearest(best, found, geometry.Hit{
			Point:    fromRaylib(collision.Point),
			Normal:   fromRaylib(collision.Normal),
			Distance: float64(collision.Distance),
		})
	}
	return best, found
}

// PickSurface hits the floor when one is shown, the building otherwise.
func (app *App) PickSurface(ray geometry.Ray) (geometry.Hit, bool) {
	if app.Scene.floor != nil {
		return app.Scene.floor.raycast(ray)
	}
	return app.Scene.building.raycast(ray)
}

func (app *App) drawScene() {
	sm := app.Scene.floor
	if sm == nil {
		sm = app.Scene.building
	}
	if sm == nil {
		return
	}

	if app.View.showFilled {
		rl.DrawModel(sm.model, rl.Vector3{}, 1, rl.White)
	}
	if app.View.showWireframe {
		rl.DrawModelWires(sm.model, rl.Vector3{}, 1, wireColor)
	}
}

// drawMarkers draws every visible marker as a sphere with a spinning ring
func (app *App) drawMarkers() {
	color := markerColor
	if app.machine.Mode.Get() == nav.LinkRemove {
		color = removeColor
	}

	for _, m := range app.store.Markers().All() {
		if !m.Visible {
			continue
		}
		pos := toRaylib(m.Position)
		radius := float32(m.Radius)
		rl.DrawSphere(pos, radius, color)
		rl.DrawCircle3D(pos, radius*1.6, markerRingUp, float32(m.RotationY*180/math.Pi), ringColor)
	}
}

// stlToRaylibMesh converts an STL model to a Raylib mesh with baked lighting
func stlToRaylibMesh(model *stl.Model) rl.Mesh {
	triangleCount := len(model.Triangles)
	vertexCount := triangleCount * 3

	mesh := rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(triangleCount),
	}

	vertices := make([]float32, 0, vertexCount*3)
	normals := make([]float32, 0, vertexCount*3)
	texcoords := make([]float32, 0, vertexCount*2)
	colors := make([]uint8, 0, vertexCount*4)

	// Light direction for baked lighting
	lightDir := geometry.NewVector3(-0.5, -1.0, -0.5).Normalize()

	for _, triangle := range model.Triangles {
		normal := triangle.CalculateNormal()

		// Min 35% ambient, max 100% diffuse
		intensity := math.Max(0.35, -normal.Dot(lightDir))
		shade := uint8(220 * intensity)

		for i, v := range [3]geometry.Vector3{triangle.V1, triangle.V2, triangle.V3} {
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, float32(normal.X), float32(normal.Y), float32(normal.Z))
			texcoords = append(texcoords, float32(i%2), float32(i/2))
			colors = append(colors, shade, shade, shade, 255)
		}
	}

	if len(vertices) > 0 {
		mesh.Vertices = &vertices[0]
		mesh.Normals = &normals[0]
		mesh.Texcoords = &texcoords[0]
		mesh.Colors = &colors[0]
	}

	// Upload mesh data to GPU
	rl.UploadMesh(&mesh, false)

	return mesh
}
