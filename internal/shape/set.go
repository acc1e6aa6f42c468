package shape

import (
	"github.com/OCAP2/mapedit/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// Set is a shape on the map together with the index of its markers.
type Set struct {
	shape Shape
	index *MarkerIndex
}

// Shape returns the root shape.
func (s *Set) Shape() Shape {
	return s.shape
}

// Index returns the marker index of the set.
func (s *Set) Index() *MarkerIndex {
	return s.index
}

// Editable returns the owners in the set that accept new markers, in shape order.
func (s *Set) Editable() []ShapeMarkers {
	return s.shape.owners()
}

// Contains reports whether the marker belongs to this set.
func (s *Set) Contains(id core.MarkerID) bool {
	return s.index.Contains(id)
}

// Delete removes a marker of the set from its shape and the map.
func (s *Set) Delete(id core.MarkerID) bool {
	return s.index.Delete(id)
}

func (s *Set) Update() {
	s.shape.Update()
}

// Remove takes the shape off the map and forgets its markers.
func (s *Set) Remove() {
	for _, owner := range s.shape.owners() {
		for _, m := range owner.Markers() {
			s.index.Forget(m.ID)
		}
	}
	s.shape.Remove()
}

func (s *Set) IsValid() bool {
	return s.shape.IsValid()
}

func (s *Set) SetVisible(visible bool) {
	s.shape.SetVisible(visible)
}

// SetVisibleMarkers shows or hides the markers of the shape and the bare
// markers of the index.
func (s *Set) SetVisibleMarkers(visible bool) {
	s.shape.SetVisibleMarkers(visible)
	for _, m := range s.index.Bare() {
		s.index.surface.SetMarkerVisible(m, visible)
	}
}

// PruneHoles drops the deleted holes of every polygon in the set and
// returns how many went.
func (s *Set) PruneHoles() int {
	n := 0
	for _, owner := range s.shape.owners() {
		if p, ok := owner.(*PolygonMarkers); ok {
			n += p.PruneHoles()
		}
	}
	return n
}

func (s *Set) SetZIndex(zIndex float64) {
	s.shape.SetZIndex(zIndex)
}

// Geometry returns the current edited geometry.
func (s *Set) Geometry() geom.Geometry {
	return s.shape.Geometry()
}

// Bounds returns the bounding box of every marker in the shape.
func (s *Set) Bounds() (core.Bounds, bool) {
	var points []core.LatLng
	for _, owner := range s.shape.owners() {
		points = append(points, core.Positions(owner.Markers())...)
	}
	return core.BoundsOf(points)
}
