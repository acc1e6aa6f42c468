// Package shape keeps draggable marker handles and the rendered line and
// polygon overlays they describe in sync.
package shape

import (
	"errors"
	"slices"

	"github.com/OCAP2/mapedit/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

var (
	// ErrChildrenUnsupported is returned by CreateChild on shapes that cannot own children
	ErrChildrenUnsupported = errors.New("shape does not support children")
	// ErrUnsupportedGeometry is returned when a geometry cannot be edited with markers
	ErrUnsupportedGeometry = errors.New("unsupported geometry")
)

// Shape is anything that can be drawn and edited on the map, including
// composites of several marker shapes.
type Shape interface {
	// SetVisible shows or hides the rendered shape and all of its markers.
	SetVisible(visible bool)
	// SetVisibleMarkers shows or hides the markers only.
	SetVisibleMarkers(visible bool)
	SetZIndex(zIndex float64)

	IsValid() bool
	IsDeleted() bool

	// Update rebuilds the rendered shape from the current marker positions.
	Update()
	// Remove takes the shape and all of its markers off the map.
	Remove()

	// Geometry returns the current edited geometry.
	Geometry() geom.Geometry

	// owners lists every marker owner in the shape, nested ones included.
	owners() []ShapeMarkers
}

// ShapeMarkers is a shape that owns an ordered sequence of marker handles.
type ShapeMarkers interface {
	Shape

	// Markers returns the owned markers in ring or chain order. Children's
	// markers are not included.
	Markers() []*core.Marker
	// Delete removes m from the shape and the map. Returns false if m is
	// not owned here.
	Delete(m *core.Marker) bool
	// AddNew inserts m where it best fits the existing geometry.
	AddNew(m *core.Marker)
	// CreateChild starts a new child shape, e.g. a polygon hole.
	CreateChild() (ShapeMarkers, error)

	// detach drops m from the sequence without removing it from the map.
	detach(m *core.Marker) bool
}

// removeFrom returns markers without m and whether m was found.
func removeFrom(markers []*core.Marker, m *core.Marker) ([]*core.Marker, bool) {
	i := slices.Index(markers, m)
	if i < 0 {
		return markers, false
	}
	return slices.Delete(markers, i, i+1), true
}

// validRing reports whether a ring has no vertices yet or enough for an area.
func validRing(n int) bool {
	return n == 0 || n >= 3
}
