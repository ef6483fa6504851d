package links

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/philipparndt/gobuilding/pkg/geometry"
)

// linkData is the persisted form of a link
type linkData struct {
	Position [3]float64 `json:"position"`
	Target   string     `json:"target"`
}

// rawLinkData tolerates missing or mistyped fields on load
type rawLinkData struct {
	Position []float64 `json:"position"`
	Target   *string   `json:"target"`
}

// Snapshot returns the serialized store.
func (s *Store) Snapshot() ([]byte, error) {
	data := make(map[string][]linkData, len(s.links))
	for object, list := range s.links {
		items := make([]linkData, 0, len(list))
		for _, l := range list {
			items = append(items, linkData{Position: l.Position.Array(), Target: l.Target})
		}
		data[object] = items
	}
	return json.Marshal(data)
}

// Save writes the whole store into the snapshot slot.
func (s *Store) Save() error {
	data, err := s.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to marshal links: %w", err)
	}
	if err := s.kv.Set(SnapshotKey, string(data)); err != nil {
		return fmt.Errorf("failed to save links: %w", err)
	}
	return nil
}

// Load replaces the store content with the persisted snapshot and rebuilds
// the markers. Malformed objects and links are skipped; only a failing
// backend read is returned as an error.
func (s *Store) Load() error {
	value, ok, err := s.kv.Get(SnapshotKey)
	if err != nil {
		return fmt.Errorf("failed to load links: %w", err)
	}

	s.markers.clear()
	s.links = make(map[string][]Link)

	if ok {
		s.restore([]byte(value))
	}

	s.applyVisibility()
	s.log.Info().Int("links", s.Count()).Int("objects", len(s.links)).Msg("links loaded")
	return nil
}

func (s *Store) restore(value []byte) {
	var objects map[string]json.RawMessage
	if err := json.Unmarshal(value, &objects); err != nil {
		s.log.Warn().Err(err).Msg("discarding unreadable link snapshot")
		return
	}

	names := make([]string, 0, len(objects))
	for name := range objects {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, object := range names {
		var items []json.RawMessage
		if err := json.Unmarshal(objects[object], &items); err != nil {
			s.log.Warn().Str("object", object).Msg("skipping links that are not a list")
			continue
		}

		for i, item := range items {
			var d rawLinkData
			if err := json.Unmarshal(item, &d); err != nil {
				s.log.Warn().Str("object", object).Int("index", i).Err(err).Msg("skipping malformed link")
				continue
			}
			position, err := geometry.Vector3FromSlice(d.Position)
			if err != nil {
				s.log.Warn().Str("object", object).Int("index", i).Err(err).Msg("skipping link without position")
				continue
			}
			if d.Target == nil || *d.Target == "" {
				s.log.Warn().Str("object", object).Int("index", i).Msg("skipping link without target")
				continue
			}
			s.addLink(position, *d.Target, object)
		}
	}
}
