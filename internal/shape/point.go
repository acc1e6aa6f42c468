package shape

import (
	"slices"

	"github.com/OCAP2/mapedit/internal/geo"
	"github.com/OCAP2/mapedit/internal/render"
	"github.com/OCAP2/mapedit/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// PointMarkers is a point or multi point. The markers are the rendering, so
// there is no facade.
type PointMarkers struct {
	surface render.Surface
	markers []*core.Marker
	multi   bool
}

// NewPointMarkers creates an empty single point.
func NewPointMarkers(surface render.Surface) *PointMarkers {
	return &PointMarkers{surface: surface}
}

// NewMultiPointMarkers creates an empty multi point.
func NewMultiPointMarkers(surface render.Surface) *PointMarkers {
	return &PointMarkers{surface: surface, multi: true}
}

// Add appends m without any placement logic.
func (p *PointMarkers) Add(m *core.Marker) {
	p.markers = append(p.markers, m)
}

func (p *PointMarkers) Markers() []*core.Marker {
	return slices.Clone(p.markers)
}

// IsMulti reports whether this is a multi point.
func (p *PointMarkers) IsMulti() bool {
	return p.multi
}

func (p *PointMarkers) SetVisible(visible bool) {
	p.SetVisibleMarkers(visible)
}

func (p *PointMarkers) SetVisibleMarkers(visible bool) {
	for _, m := range p.markers {
		p.surface.SetMarkerVisible(m, visible)
	}
}

func (p *PointMarkers) SetZIndex(zIndex float64) {
	for _, m := range p.markers {
		p.surface.SetMarkerZIndex(m, zIndex)
	}
}

// IsValid is true for an empty or single point, and always for a multi point.
func (p *PointMarkers) IsValid() bool {
	return p.multi || len(p.markers) <= 1
}

func (p *PointMarkers) IsDeleted() bool {
	return len(p.markers) == 0
}

// Update is a no-op, points have no facade.
func (p *PointMarkers) Update() {}

func (p *PointMarkers) Remove() {
	for _, m := range p.markers {
		p.surface.RemoveMarker(m)
	}
	p.markers = nil
}

func (p *PointMarkers) Delete(m *core.Marker) bool {
	var ok bool
	p.markers, ok = removeFrom(p.markers, m)
	if !ok {
		return false
	}
	p.surface.RemoveMarker(m)
	return true
}

func (p *PointMarkers) AddNew(m *core.Marker) {
	p.Add(m)
}

func (p *PointMarkers) CreateChild() (ShapeMarkers, error) {
	return nil, ErrChildrenUnsupported
}

func (p *PointMarkers) Geometry() geom.Geometry {
	if p.multi {
		points := make([]geom.Point, len(p.markers))
		for i, m := range p.markers {
			points[i] = geo.Point(m.Position)
		}
		return geom.NewMultiPoint(points).AsGeometry()
	}
	if len(p.markers) == 0 {
		return geom.NewEmptyPoint(geom.DimXY).AsGeometry()
	}
	return geo.Point(p.markers[0].Position).AsGeometry()
}

func (p *PointMarkers) detach(m *core.Marker) bool {
	var ok bool
	p.markers, ok = removeFrom(p.markers, m)
	return ok
}

func (p *PointMarkers) owners() []ShapeMarkers {
	return []ShapeMarkers{p}
}
