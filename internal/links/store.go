// Package links owns the link graph: which object links to which, the
// markers representing those links and their persisted snapshot.
package links

import (
	"math"
	"slices"

	"github.com/philipparndt/gobuilding/internal/kv"
	"github.com/philipparndt/gobuilding/pkg/geometry"
	"github.com/rs/zerolog"
)

const (
	// SnapshotKey is the key-value slot holding the serialized store.
	SnapshotKey = "linksByObject"

	DefaultMarkerRadius = 0.3
	DefaultSpin         = 0.6 // radians per second
)

// Link is a directed edge from the object it is stored under to Target,
// anchored at Position.
type Link struct {
	ID       LinkID
	Position geometry.Vector3
	Target   string
	Marker   *Marker
}

// Option configures a Store.
type Option func(*Store)

// WithMarkerRadius sets the radius of new markers.
func WithMarkerRadius(r float64) Option {
	return func(s *Store) { s.radius = r }
}

// WithSpin sets the marker rotation speed in radians per second.
func WithSpin(radPerSec float64) Option {
	return func(s *Store) { s.spin = radPerSec }
}

// Store maps object ids to their ordered links. It is not safe for
// concurrent use; the viewer touches it from the render loop only.
type Store struct {
	kv      kv.Store
	log     zerolog.Logger
	links   map[string][]Link
	markers *MarkerSet
	nextID  LinkID
	radius  float64
	spin    float64

	shown   string
	showing bool
}

// NewStore creates an empty store persisting into backend.
func NewStore(backend kv.Store, log zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		kv:      backend,
		log:     log,
		links:   make(map[string][]Link),
		markers: NewMarkerSet(),
		radius:  DefaultMarkerRadius,
		spin:    DefaultSpin,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Markers returns the shared marker collection.
func (s *Store) Markers() *MarkerSet {
	return s.markers
}

// CreateLink anchors a new link to target on object. The link is kept even
// when persisting fails; the error only reports the failed write.
func (s *Store) CreateLink(position geometry.Vector3, target, object string) (Link, error) {
	link := s.addLink(position, target, object)
	s.log.Debug().Str("object", object).Str("target", target).Stringer("position", position).Msg("link created")
	return link, s.Save()
}

func (s *Store) addLink(position geometry.Vector3, target, object string) Link {
	s.nextID++
	marker := &Marker{
		ID:       s.nextID,
		Position: position,
		Radius:   s.radius,
		Visible:  s.showing && object == s.shown,
	}
	s.markers.add(marker)

	link := Link{ID: marker.ID, Position: position, Target: target, Marker: marker}
	s.links[object] = append(s.links[object], link)
	return link
}

// RemoveLink removes the link at index from object. Unknown objects and
// out-of-range indices are a no-op reported as false.
func (s *Store) RemoveLink(index int, object string) (bool, error) {
	list, ok := s.links[object]
	if !ok || index < 0 || index >= len(list) {
		return false, nil
	}

	link := list[index]
	s.markers.remove(link.ID)
	list = slices.Delete(list, index, index+1)
	if len(list) == 0 {
		delete(s.links, object)
	} else {
		s.links[object] = list
	}

	s.log.Debug().Str("object", object).Str("target", link.Target).Msg("link removed")
	return true, s.Save()
}

// LinksFor returns a copy of the links anchored on object.
func (s *Store) LinksFor(object string) []Link {
	return slices.Clone(s.links[object])
}

// IndexOf resolves a link id to its index on object, or -1.
func (s *Store) IndexOf(object string, id LinkID) int {
	return slices.IndexFunc(s.links[object], func(l Link) bool { return l.ID == id })
}

// Objects returns the ids of all objects carrying links, sorted.
func (s *Store) Objects() []string {
	objects := make([]string, 0, len(s.links))
	for object := range s.links {
		objects = append(objects, object)
	}
	slices.Sort(objects)
	return objects
}

// Count returns the total number of links.
func (s *Store) Count() int {
	n := 0
	for _, list := range s.links {
		n += len(list)
	}
	return n
}

// ShowMarkersFor makes exactly the markers of object visible. This is the
// only place marker visibility changes.
func (s *Store) ShowMarkersFor(object string) {
	s.shown = object
	s.showing = true
	s.applyVisibility()
}

// HideMarkers hides every marker until the next ShowMarkersFor.
func (s *Store) HideMarkers() {
	s.shown = ""
	s.showing = false
	s.applyVisibility()
}

func (s *Store) applyVisibility() {
	owned := make(map[LinkID]bool)
	if s.showing {
		for _, l := range s.links[s.shown] {
			owned[l.ID] = true
		}
	}
	for _, m := range s.markers.items {
		m.Visible = owned[m.ID]
	}
}

// RemoveAll drops every link and marker and deletes the persisted snapshot.
func (s *Store) RemoveAll() (int, error) {
	n := s.Count()
	s.markers.clear()
	s.links = make(map[string][]Link)
	s.log.Info().Int("removed", n).Msg("all links removed")
	return n, s.kv.Delete(SnapshotKey)
}

// Tick spins every marker; dt is the frame time in seconds.
func (s *Store) Tick(dt float64) {
	step := s.spin * dt
	for _, m := range s.markers.items {
		m.RotationY = math.Mod(m.RotationY+step, 2*math.Pi)
	}
}
