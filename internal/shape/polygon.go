package shape

import (
	"slices"

	"github.com/OCAP2/mapedit/internal/geo"
	"github.com/OCAP2/mapedit/internal/render"
	"github.com/OCAP2/mapedit/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// PolygonMarkers is a closed ring of markers with optional holes, rendered as
// one polygon facade.
type PolygonMarkers struct {
	surface render.Surface
	facade  core.FacadeID
	markers []*core.Marker
	holes   []*PolygonHoleMarkers

	hidden  bool
	zIndex  float64
	removed bool
}

// NewPolygonMarkers creates an empty polygon. The facade is created by the
// first Update that has markers to draw.
func NewPolygonMarkers(surface render.Surface) *PolygonMarkers {
	return &PolygonMarkers{surface: surface}
}

// Add appends m to the ring without any placement logic.
func (p *PolygonMarkers) Add(m *core.Marker) {
	p.markers = append(p.markers, m)
}

func (p *PolygonMarkers) Markers() []*core.Marker {
	return slices.Clone(p.markers)
}

// Holes returns the holes in order, deleted ones included.
func (p *PolygonMarkers) Holes() []*PolygonHoleMarkers {
	return slices.Clone(p.holes)
}

// Facade returns the rendered polygon, or zero if none is on the map.
func (p *PolygonMarkers) Facade() core.FacadeID {
	return p.facade
}

// PruneHoles drops deleted holes from the polygon and returns how many went.
func (p *PolygonMarkers) PruneHoles() int {
	before := len(p.holes)
	p.holes = slices.DeleteFunc(p.holes, func(h *PolygonHoleMarkers) bool {
		return h.IsDeleted()
	})
	return before - len(p.holes)
}

// holePoints returns the point lists of the holes that are not deleted.
func (p *PolygonMarkers) holePoints() [][]core.LatLng {
	holes := make([][]core.LatLng, 0, len(p.holes))
	for _, h := range p.holes {
		if !h.IsDeleted() {
			holes = append(holes, core.Positions(h.markers))
		}
	}
	return holes
}

func (p *PolygonMarkers) Update() {
	if p.removed {
		return
	}
	if p.IsDeleted() {
		p.removeFacade()
		return
	}
	points := core.Positions(p.markers)
	holes := p.holePoints()
	if p.facade == 0 {
		p.facade = p.surface.CreatePolygon(points, holes)
		applyFacadeStyle(p.surface, p.facade, p.hidden, p.zIndex)
		return
	}
	p.surface.UpdateFacade(p.facade, points, holes)
}

func (p *PolygonMarkers) removeFacade() {
	if p.facade != 0 {
		p.surface.RemoveFacade(p.facade)
		p.facade = 0
	}
}

func (p *PolygonMarkers) Remove() {
	p.removeFacade()
	for _, m := range p.markers {
		p.surface.RemoveMarker(m)
	}
	p.markers = nil
	for _, h := range p.holes {
		h.Remove()
	}
	p.removed = true
}

func (p *PolygonMarkers) SetVisible(visible bool) {
	p.hidden = !visible
	if p.facade != 0 {
		p.surface.SetFacadeVisible(p.facade, visible)
	}
	for _, m := range p.markers {
		p.surface.SetMarkerVisible(m, visible)
	}
	for _, h := range p.holes {
		h.SetVisible(visible)
	}
}

func (p *PolygonMarkers) SetVisibleMarkers(visible bool) {
	for _, m := range p.markers {
		p.surface.SetMarkerVisible(m, visible)
	}
	for _, h := range p.holes {
		h.SetVisibleMarkers(visible)
	}
}

func (p *PolygonMarkers) SetZIndex(zIndex float64) {
	p.zIndex = zIndex
	if p.facade != 0 {
		p.surface.SetFacadeZIndex(p.facade, zIndex)
	}
	for _, m := range p.markers {
		p.surface.SetMarkerZIndex(m, zIndex)
	}
	for _, h := range p.holes {
		h.SetZIndex(zIndex)
	}
}

// IsValid checks the ring and every hole.
func (p *PolygonMarkers) IsValid() bool {
	if !validRing(len(p.markers)) {
		return false
	}
	for _, h := range p.holes {
		if !h.IsValid() {
			return false
		}
	}
	return true
}

func (p *PolygonMarkers) IsDeleted() bool {
	return len(p.markers) == 0
}

func (p *PolygonMarkers) Delete(m *core.Marker) bool {
	var ok bool
	p.markers, ok = removeFrom(p.markers, m)
	if !ok {
		return false
	}
	p.surface.RemoveMarker(m)
	p.Update()
	return true
}

func (p *PolygonMarkers) AddNew(m *core.Marker) {
	p.markers = AddMarkerAsPolygon(m, p.markers)
}

// CreateChild adds a new empty hole to the polygon.
func (p *PolygonMarkers) CreateChild() (ShapeMarkers, error) {
	return p.NewHole(), nil
}

// NewHole adds a new empty hole to the polygon and returns it.
func (p *PolygonMarkers) NewHole() *PolygonHoleMarkers {
	hole := &PolygonHoleMarkers{parent: p}
	p.holes = append(p.holes, hole)
	return hole
}

// Geometry returns the polygon without its deleted holes. A deleted ring
// gives an empty polygon.
func (p *PolygonMarkers) Geometry() geom.Geometry {
	return p.polygon().AsGeometry()
}

func (p *PolygonMarkers) polygon() geom.Polygon {
	return geo.Polygon(core.Positions(p.markers), p.holePoints())
}

func (p *PolygonMarkers) detach(m *core.Marker) bool {
	var ok bool
	p.markers, ok = removeFrom(p.markers, m)
	if ok {
		p.Update()
	}
	return ok
}

func (p *PolygonMarkers) owners() []ShapeMarkers {
	owners := make([]ShapeMarkers, 0, len(p.holes)+1)
	owners = append(owners, p)
	for _, h := range p.holes {
		owners = append(owners, h)
	}
	return owners
}
