package shape

import (
	"github.com/OCAP2/mapedit/internal/render"
	"github.com/OCAP2/mapedit/pkg/core"
)

type indexEntry struct {
	marker *core.Marker
	owner  ShapeMarkers // nil for bare markers
}

// MarkerIndex maps marker ids to the shape that directly owns them. Hole
// markers map to the hole, not the polygon. Bare markers have no owner.
// It is not safe for concurrent use.
type MarkerIndex struct {
	surface render.Surface
	entries map[core.MarkerID]indexEntry
}

// NewMarkerIndex creates an empty index for markers on surface.
func NewMarkerIndex(surface render.Surface) *MarkerIndex {
	return &MarkerIndex{
		surface: surface,
		entries: make(map[core.MarkerID]indexEntry),
	}
}

// Add registers owner for m, replacing any previous owner.
func (idx *MarkerIndex) Add(m *core.Marker, owner ShapeMarkers) {
	idx.entries[m.ID] = indexEntry{marker: m, owner: owner}
}

// AddBare registers a marker that belongs to no shape.
func (idx *MarkerIndex) AddBare(m *core.Marker) {
	idx.Add(m, nil)
}

// AddAll registers every marker currently owned by owner.
func (idx *MarkerIndex) AddAll(owner ShapeMarkers) {
	for _, m := range owner.Markers() {
		idx.Add(m, owner)
	}
}

// AddShape registers the markers of every owner in s, holes and composite
// components included.
func (idx *MarkerIndex) AddShape(s Shape) {
	for _, owner := range s.owners() {
		idx.AddAll(owner)
	}
}

// Merge copies all entries of other into idx. other wins on collisions.
func (idx *MarkerIndex) Merge(other *MarkerIndex) {
	for id, e := range other.entries {
		idx.entries[id] = e
	}
}

// Contains reports whether the marker id is registered, bare or owned.
func (idx *MarkerIndex) Contains(id core.MarkerID) bool {
	_, ok := idx.entries[id]
	return ok
}

// Lookup returns the owner of a marker. It reports false for bare and
// unknown markers.
func (idx *MarkerIndex) Lookup(id core.MarkerID) (ShapeMarkers, bool) {
	e, ok := idx.entries[id]
	if !ok || e.owner == nil {
		return nil, false
	}
	return e.owner, true
}

// Marker returns the registered handle for id.
func (idx *MarkerIndex) Marker(id core.MarkerID) (*core.Marker, bool) {
	e, ok := idx.entries[id]
	if !ok {
		return nil, false
	}
	return e.marker, true
}

// Delete removes a marker from the index, its owner and the map.
// Returns false if the id was not registered.
func (idx *MarkerIndex) Delete(id core.MarkerID) bool {
	e, ok := idx.entries[id]
	if !ok {
		return false
	}
	delete(idx.entries, id)
	if e.owner == nil || !e.owner.Delete(e.marker) {
		idx.surface.RemoveMarker(e.marker)
	}
	return true
}

// Move hands a registered marker over to another owner. The handle stays on
// the map; both shapes are redrawn. Returns false if the id is unknown.
func (idx *MarkerIndex) Move(id core.MarkerID, to ShapeMarkers) bool {
	e, ok := idx.entries[id]
	if !ok {
		return false
	}
	if e.owner != nil {
		e.owner.detach(e.marker)
	}
	to.AddNew(e.marker)
	idx.entries[id] = indexEntry{marker: e.marker, owner: to}
	to.Update()
	return true
}

// Forget drops entries without touching the map or the owners.
func (idx *MarkerIndex) Forget(ids ...core.MarkerID) {
	for _, id := range ids {
		delete(idx.entries, id)
	}
}

// Bare returns the markers that belong to no shape.
func (idx *MarkerIndex) Bare() []*core.Marker {
	var bare []*core.Marker
	for _, e := range idx.entries {
		if e.owner == nil {
			bare = append(bare, e.marker)
		}
	}
	return bare
}

// Len returns the number of registered markers.
func (idx *MarkerIndex) Len() int {
	return len(idx.entries)
}

// IsEmpty reports whether no markers are registered.
func (idx *MarkerIndex) IsEmpty() bool {
	return len(idx.entries) == 0
}

// Reset clears the index.
func (idx *MarkerIndex) Reset() {
	idx.entries = make(map[core.MarkerID]indexEntry)
}
