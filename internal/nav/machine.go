// Package nav tracks which object is displayed, the history of visits and
// the interaction mode of the viewer.
package nav

import "slices"

// Building is the sentinel id of the root structure. It is always the
// bottom of the history.
const Building = "building"

// Mode is the interaction mode. Modes are mutually exclusive.
type Mode int

const (
	Idle Mode = iota
	LinkCreate
	LinkRemove
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case LinkCreate:
		return "link-create"
	case LinkRemove:
		return "link-remove"
	default:
		return "unknown"
	}
}

// Request describes the scene change a transition asks for. Generation
// identifies the transition so late load results can be recognized.
type Request struct {
	Target     string
	Generation uint64
}

// Resolution is what the caller must do with a finished load.
type Resolution int

const (
	// Discard drops a result superseded by a later transition.
	Discard Resolution = iota
	// Apply shows the result; it is now the displayed object.
	Apply
	// Fail reports a failed load of the current object.
	Fail
)

func (r Resolution) String() string {
	switch r {
	case Discard:
		return "discard"
	case Apply:
		return "apply"
	case Fail:
		return "fail"
	default:
		return "unknown"
	}
}

// Machine is the navigation state machine. History and current object
// change synchronously; loading the scene for them is the caller's job.
// The displayed object only changes once a load is resolved.
type Machine struct {
	history    []string
	generation uint64
	displayed  string

	Mode    *Value[Mode]
	Current *Value[string]
	Loading *Value[bool]
}

// NewMachine creates a machine showing the building in Idle mode.
func NewMachine() *Machine {
	return &Machine{
		history:   []string{Building},
		displayed: Building,
		Mode:    NewValue(Idle),
		Current: NewValue(Building),
		Loading: NewValue(false),
	}
}

// EnterLinkCreate switches to link creation.
func (m *Machine) EnterLinkCreate() { m.Mode.Set(LinkCreate) }

// EnterLinkRemove switches to link removal.
func (m *Machine) EnterLinkRemove() { m.Mode.Set(LinkRemove) }

// ExitToIdle leaves any mode.
func (m *Machine) ExitToIdle() { m.Mode.Set(Idle) }

// NavigateTo records a visit to target. Visiting the same target twice
// pushes it twice.
func (m *Machine) NavigateTo(target string) Request {
	m.history = append(m.history, target)
	return m.transition()
}

// GoBack undoes exactly one visit. It reports false at the bottom of the
// history, in which case nothing must be loaded.
func (m *Machine) GoBack() (Request, bool) {
	if len(m.history) <= 1 {
		return Request{}, false
	}
	m.history = m.history[:len(m.history)-1]
	return m.transition(), true
}

// ResetToBuilding drops the whole history.
func (m *Machine) ResetToBuilding() Request {
	m.history = []string{Building}
	return m.transition()
}

// Refresh asks for the current object again without touching the
// history, superseding any load still in flight.
func (m *Machine) Refresh() Request {
	return m.transition()
}

func (m *Machine) transition() Request {
	m.generation++
	top := m.history[len(m.history)-1]
	m.Current.Set(top)
	return Request{Target: top, Generation: m.generation}
}

// IsCurrent reports whether generation belongs to the latest transition.
func (m *Machine) IsCurrent(generation uint64) bool {
	return generation == m.generation
}

// Resolve settles the load started by the transition with generation.
// Results of older transitions are discarded whatever their error; the
// last navigation wins. A failed load of the current object clears the
// loading flag but leaves the displayed object unchanged, so the machine
// stays not Ready until the next transition.
func (m *Machine) Resolve(generation uint64, err error) Resolution {
	if !m.IsCurrent(generation) {
		return Discard
	}
	if err != nil {
		m.SetLoading(false)
		return Fail
	}
	m.displayed = m.CurrentObject()
	m.SetLoading(false)
	return Apply
}

// Displayed returns the object whose geometry is on screen.
func (m *Machine) Displayed() string {
	return m.displayed
}

// Ready reports whether the scene shows the current object, i.e. picking
// against it and editing its links is meaningful.
func (m *Machine) Ready() bool {
	return !m.IsLoading() && m.displayed == m.CurrentObject()
}

// CurrentObject returns the top of the history.
func (m *Machine) CurrentObject() string {
	return m.history[len(m.history)-1]
}

// History returns a copy of the visit stack, bottom first.
func (m *Machine) History() []string {
	return slices.Clone(m.history)
}

// Depth is the history length.
func (m *Machine) Depth() int {
	return len(m.history)
}

// SetLoading sets the loading flag.
func (m *Machine) SetLoading(loading bool) { m.Loading.Set(loading) }

// IsLoading reports whether a scene load is in flight.
func (m *Machine) IsLoading() bool { return m.Loading.Get() }
