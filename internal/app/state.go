package app

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gobuilding/internal/loader"
	"github.com/philipparndt/gobuilding/pkg/geometry"
)

// CameraState holds all camera-related state
type CameraState struct {
	camera   rl.Camera3D
	distance float32
	angleX   float32
	angleY   float32
	target   rl.Vector3 // Current camera target (can be panned)
}

// sceneModel is an asset uploaded to the GPU
type sceneModel struct {
	asset  *loader.Asset
	model  rl.Model
	scale  float32
	bounds geometry.BoundingBox // world space, empty for glTF until measured
}

// SceneState holds what is drawn. The building stays loaded while a
// floor is shown and is only hidden.
type SceneState struct {
	building *sceneModel
	floor    *sceneModel
}

// ViewSettings holds display settings
type ViewSettings struct {
	showWireframe bool
	showFilled    bool
}

// InteractionState holds mouse and interaction state
type InteractionState struct {
	mouseDownPos rl.Vector2
	mouseMoved   bool
	isPanning    bool
	ready        bool // false when interactivity setup failed; clicks are ignored
}

type toast struct {
	text    string
	isError bool
	until   time.Time
}

// DialogState is the target selection prompt shown in link creation mode
type DialogState struct {
	open     bool
	point    geometry.Vector3
	options  []string
	hovered  int
	selected int
	done     func(target string, ok bool)
}

// UIState holds UI-related state
type UIState struct {
	font         rl.Font
	toasts       []toast
	dialog       DialogState
	loadingSince time.Time
}
