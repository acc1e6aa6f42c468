package shape

import (
	"slices"

	"github.com/OCAP2/mapedit/internal/geo"
	"github.com/OCAP2/mapedit/internal/render"
	"github.com/OCAP2/mapedit/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// PolylineMarkers is an open chain of markers rendered as a line.
type PolylineMarkers struct {
	surface render.Surface
	facade  core.FacadeID
	markers []*core.Marker

	hidden  bool
	zIndex  float64
	removed bool
}

// NewPolylineMarkers creates an empty chain. The line is created by the first
// Update that has markers to draw.
func NewPolylineMarkers(surface render.Surface) *PolylineMarkers {
	return &PolylineMarkers{surface: surface}
}

// Add appends m to the end of the chain without any placement logic.
func (p *PolylineMarkers) Add(m *core.Marker) {
	p.markers = append(p.markers, m)
}

func (p *PolylineMarkers) Markers() []*core.Marker {
	return slices.Clone(p.markers)
}

// Facade returns the rendered line, or zero if none is on the map.
func (p *PolylineMarkers) Facade() core.FacadeID {
	return p.facade
}

func (p *PolylineMarkers) Update() {
	if p.removed {
		return
	}
	if p.IsDeleted() {
		p.removeFacade()
		return
	}
	points := core.Positions(p.markers)
	if p.facade == 0 {
		p.facade = p.surface.CreatePolyline(points)
		applyFacadeStyle(p.surface, p.facade, p.hidden, p.zIndex)
		return
	}
	p.surface.UpdateFacade(p.facade, points, nil)
}

func (p *PolylineMarkers) removeFacade() {
	if p.facade != 0 {
		p.surface.RemoveFacade(p.facade)
		p.facade = 0
	}
}

func (p *PolylineMarkers) Remove() {
	p.removeFacade()
	for _, m := range p.markers {
		p.surface.RemoveMarker(m)
	}
	p.markers = nil
	p.removed = true
}

func (p *PolylineMarkers) SetVisible(visible bool) {
	p.hidden = !visible
	if p.facade != 0 {
		p.surface.SetFacadeVisible(p.facade, visible)
	}
	p.SetVisibleMarkers(visible)
}

func (p *PolylineMarkers) SetVisibleMarkers(visible bool) {
	for _, m := range p.markers {
		p.surface.SetMarkerVisible(m, visible)
	}
}

func (p *PolylineMarkers) SetZIndex(zIndex float64) {
	p.zIndex = zIndex
	if p.facade != 0 {
		p.surface.SetFacadeZIndex(p.facade, zIndex)
	}
	for _, m := range p.markers {
		p.surface.SetMarkerZIndex(m, zIndex)
	}
}

// IsValid is true for an empty chain or one with at least two markers.
func (p *PolylineMarkers) IsValid() bool {
	return len(p.markers) == 0 || len(p.markers) >= 2
}

func (p *PolylineMarkers) IsDeleted() bool {
	return len(p.markers) == 0
}

func (p *PolylineMarkers) Delete(m *core.Marker) bool {
	var ok bool
	p.markers, ok = removeFrom(p.markers, m)
	if !ok {
		return false
	}
	p.surface.RemoveMarker(m)
	p.Update()
	return true
}

func (p *PolylineMarkers) AddNew(m *core.Marker) {
	p.markers = AddMarkerAsPolyline(m, p.markers)
}

func (p *PolylineMarkers) CreateChild() (ShapeMarkers, error) {
	return nil, ErrChildrenUnsupported
}

func (p *PolylineMarkers) Geometry() geom.Geometry {
	return geo.LineString(core.Positions(p.markers)).AsGeometry()
}

func (p *PolylineMarkers) detach(m *core.Marker) bool {
	var ok bool
	p.markers, ok = removeFrom(p.markers, m)
	if ok {
		p.Update()
	}
	return ok
}

func (p *PolylineMarkers) owners() []ShapeMarkers {
	return []ShapeMarkers{p}
}

// applyFacadeStyle carries visibility and z-index over to a newly created facade.
func applyFacadeStyle(surface render.Surface, id core.FacadeID, hidden bool, zIndex float64) {
	if hidden {
		surface.SetFacadeVisible(id, false)
	}
	if zIndex != 0 {
		surface.SetFacadeZIndex(id, zIndex)
	}
}
