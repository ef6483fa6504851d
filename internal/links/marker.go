package links

import (
	"slices"

	"github.com/philipparndt/gobuilding/pkg/geometry"
)

// LinkID identifies a link and its marker for the lifetime of the store.
type LinkID uint64

// Marker is the visual and hit-testable handle of a link.
type Marker struct {
	ID        LinkID
	Position  geometry.Vector3
	Radius    float64
	Visible   bool
	RotationY float64 // cosmetic spin, ignored by hit tests
}

// MarkerHit is a ray hit against a marker.
type MarkerHit struct {
	ID  LinkID
	Hit geometry.Hit
}

// MarkerSet is the shared marker collection drawn and hit-tested by the viewer.
type MarkerSet struct {
	items []*Marker
}

// NewMarkerSet creates an empty collection
func NewMarkerSet() *MarkerSet {
	return &MarkerSet{}
}

func (ms *MarkerSet) add(m *Marker) {
	ms.items = append(ms.items, m)
}

func (ms *MarkerSet) remove(id LinkID) bool {
	i := slices.IndexFunc(ms.items, func(m *Marker) bool { return m.ID == id })
	if i < 0 {
		return false
	}
	ms.items = slices.Delete(ms.items, i, i+1)
	return true
}

func (ms *MarkerSet) clear() {
	ms.items = nil
}

// Len returns the number of markers in the collection
func (ms *MarkerSet) Len() int {
	return len(ms.items)
}

// All returns the markers in insertion order. The slice is a copy; the
// markers are shared and must only be read.
func (ms *MarkerSet) All() []*Marker {
	return slices.Clone(ms.items)
}

// Raycast returns the visible marker nearest along the ray. Markers are
// tested as bounding spheres so they stay selectable behind geometry.
func (ms *MarkerSet) Raycast(ray geometry.Ray) (MarkerHit, bool) {
	var (
		best  MarkerHit
		found bool
	)
	for _, m := range ms.items {
		if !m.Visible {
			continue
		}
		hit, ok := geometry.IntersectSphere(ray, m.Position, m.Radius)
		if !ok {
			continue
		}
		if !found || hit.Distance < best.Hit.Distance {
			best = MarkerHit{ID: m.ID, Hit: hit}
			found = true
		}
	}
	return best, found
}
