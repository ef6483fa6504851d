// Package interact turns pointer clicks into link and navigation actions
// according to the current interaction mode.
package interact

import (
	"github.com/philipparndt/gobuilding/internal/links"
	"github.com/philipparndt/gobuilding/internal/nav"
	"github.com/philipparndt/gobuilding/pkg/geometry"
	"github.com/rs/zerolog"
)

// Scene resolves rays against the geometry of the displayed object.
type Scene interface {
	PickSurface(ray geometry.Ray) (geometry.Hit, bool)
}

// SceneFunc adapts a raycast function to Scene.
type SceneFunc func(ray geometry.Ray) (geometry.Hit, bool)

// PickSurface calls f.
func (f SceneFunc) PickSurface(ray geometry.Ray) (geometry.Hit, bool) { return f(ray) }

// Prompter asks the user for a link target. done may be called later from
// the same goroutine that drives the dispatcher; ok is false on cancel.
type Prompter interface {
	PromptTarget(point geometry.Vector3, done func(target string, ok bool))
}

// Navigator starts a navigation to target.
type Navigator interface {
	Navigate(target string)
}

// Recorder receives counters for link changes.
type Recorder interface {
	LinkCreated(object string)
	LinksRemoved(n int)
}

// Outcome tells the caller what a click did.
type Outcome int

const (
	None Outcome = iota
	Prompted
	LinkRemoved
	Navigated
)

func (o Outcome) String() string {
	switch o {
	case Prompted:
		return "prompted"
	case LinkRemoved:
		return "link-removed"
	case Navigated:
		return "navigated"
	default:
		return "none"
	}
}

// Dispatcher routes clicks. It must be driven from one goroutine.
type Dispatcher struct {
	store     *links.Store
	machine   *nav.Machine
	scene     Scene
	prompter  Prompter
	navigator Navigator
	recorder  Recorder
	onError   func(error)
	log       zerolog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithRecorder reports link changes to r.
func WithRecorder(r Recorder) Option {
	return func(d *Dispatcher) { d.recorder = r }
}

// WithErrorHandler receives persistence failures. They are logged either way.
func WithErrorHandler(fn func(error)) Option {
	return func(d *Dispatcher) { d.onError = fn }
}

// New creates a dispatcher.
func New(store *links.Store, machine *nav.Machine, scene Scene, prompter Prompter, navigator Navigator, log zerolog.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		store:     store,
		machine:   machine,
		scene:     scene,
		prompter:  prompter,
		navigator: navigator,
		log:       log,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Click handles a pointer click cast as ray. Clicks are ignored while the
// scene does not show the current object: during a load, and after a
// failed one.
func (d *Dispatcher) Click(ray geometry.Ray) Outcome {
	if !d.machine.Ready() {
		d.log.Debug().Str("current", d.machine.CurrentObject()).Str("displayed", d.machine.Displayed()).Msg("scene not ready, click ignored")
		return None
	}

	switch d.machine.Mode.Get() {
	case nav.LinkCreate:
		return d.createAt(ray)
	case nav.LinkRemove:
		return d.removeAt(ray)
	default:
		return d.navigateAt(ray)
	}
}

func (d *Dispatcher) createAt(ray geometry.Ray) Outcome {
	hit, ok := d.scene.PickSurface(ray)
	if !ok {
		return None
	}

	object := d.machine.CurrentObject()
	d.prompter.PromptTarget(hit.Point, func(target string, ok bool) {
		defer d.machine.ExitToIdle()
		if !ok || target == "" {
			d.log.Debug().Msg("link creation cancelled")
			return
		}

		_, err := d.store.CreateLink(hit.Point, target, object)
		if d.recorder != nil {
			d.recorder.LinkCreated(object)
		}
		if err != nil {
			d.fail(err)
		}
	})
	return Prompted
}

func (d *Dispatcher) removeAt(ray geometry.Ray) Outcome {
	link, index, ok := d.pickLink(ray)
	if !ok {
		return None
	}

	object := d.machine.CurrentObject()
	removed, err := d.store.RemoveLink(index, object)
	if err != nil {
		d.fail(err)
	}
	if !removed {
		return None
	}
	if d.recorder != nil {
		d.recorder.LinksRemoved(1)
	}
	d.log.Info().Str("object", object).Str("target", link.Target).Msg("link removed")
	d.machine.ExitToIdle()
	return LinkRemoved
}

func (d *Dispatcher) navigateAt(ray geometry.Ray) Outcome {
	link, _, ok := d.pickLink(ray)
	if !ok {
		return None
	}
	d.navigator.Navigate(link.Target)
	return Navigated
}

// pickLink resolves the nearest visible marker to a link of the current object.
func (d *Dispatcher) pickLink(ray geometry.Ray) (links.Link, int, bool) {
	hit, ok := d.store.Markers().Raycast(ray)
	if !ok {
		return links.Link{}, -1, false
	}

	object := d.machine.CurrentObject()
	index := d.store.IndexOf(object, hit.ID)
	if index < 0 {
		return links.Link{}, -1, false
	}
	return d.store.LinksFor(object)[index], index, true
}

func (d *Dispatcher) fail(err error) {
	d.log.Error().Err(err).Msg("failed to persist links")
	if d.onError != nil {
		d.onError(err)
	}
}
