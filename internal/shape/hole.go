package shape

import (
	"slices"

	"github.com/OCAP2/mapedit/internal/geo"
	"github.com/OCAP2/mapedit/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// PolygonHoleMarkers is a hole ring inside a PolygonMarkers. It has no facade
// of its own; changes are drawn by updating the parent polygon.
type PolygonHoleMarkers struct {
	parent  *PolygonMarkers
	markers []*core.Marker
}

// Parent returns the polygon the hole belongs to.
func (h *PolygonHoleMarkers) Parent() *PolygonMarkers {
	return h.parent
}

// Add appends m to the hole ring without any placement logic.
func (h *PolygonHoleMarkers) Add(m *core.Marker) {
	h.markers = append(h.markers, m)
}

func (h *PolygonHoleMarkers) Markers() []*core.Marker {
	return slices.Clone(h.markers)
}

// Update redraws the parent polygon.
func (h *PolygonHoleMarkers) Update() {
	h.parent.Update()
}

// Remove takes the hole markers off the map. The parent facade is left alone.
func (h *PolygonHoleMarkers) Remove() {
	for _, m := range h.markers {
		h.parent.surface.RemoveMarker(m)
	}
	h.markers = nil
}

func (h *PolygonHoleMarkers) SetVisible(visible bool) {
	h.SetVisibleMarkers(visible)
}

func (h *PolygonHoleMarkers) SetVisibleMarkers(visible bool) {
	for _, m := range h.markers {
		h.parent.surface.SetMarkerVisible(m, visible)
	}
}

func (h *PolygonHoleMarkers) SetZIndex(zIndex float64) {
	for _, m := range h.markers {
		h.parent.surface.SetMarkerZIndex(m, zIndex)
	}
}

func (h *PolygonHoleMarkers) IsValid() bool {
	return validRing(len(h.markers))
}

func (h *PolygonHoleMarkers) IsDeleted() bool {
	return len(h.markers) == 0
}

func (h *PolygonHoleMarkers) Delete(m *core.Marker) bool {
	var ok bool
	h.markers, ok = removeFrom(h.markers, m)
	if !ok {
		return false
	}
	h.parent.surface.RemoveMarker(m)
	h.Update()
	return true
}

func (h *PolygonHoleMarkers) AddNew(m *core.Marker) {
	h.markers = AddMarkerAsPolygon(m, h.markers)
}

func (h *PolygonHoleMarkers) CreateChild() (ShapeMarkers, error) {
	return nil, ErrChildrenUnsupported
}

// Geometry returns the hole ring as a polygon of its own.
func (h *PolygonHoleMarkers) Geometry() geom.Geometry {
	return geo.Polygon(core.Positions(h.markers), nil).AsGeometry()
}

func (h *PolygonHoleMarkers) detach(m *core.Marker) bool {
	var ok bool
	h.markers, ok = removeFrom(h.markers, m)
	if ok {
		h.Update()
	}
	return ok
}

func (h *PolygonHoleMarkers) owners() []ShapeMarkers {
	return []ShapeMarkers{h}
}
