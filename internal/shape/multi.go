package shape

import (
	"slices"

	"github.com/OCAP2/mapedit/internal/geo"
	"github.com/OCAP2/mapedit/internal/render"
	"github.com/OCAP2/mapedit/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// MultiPolylineMarkers groups polylines edited as one multi line string.
type MultiPolylineMarkers struct {
	surface   render.Surface
	polylines []*PolylineMarkers
}

// NewMultiPolylineMarkers creates an empty multi polyline.
func NewMultiPolylineMarkers(surface render.Surface) *MultiPolylineMarkers {
	return &MultiPolylineMarkers{surface: surface}
}

// NewPolyline starts a new empty component and returns it.
func (mp *MultiPolylineMarkers) NewPolyline() *PolylineMarkers {
	p := NewPolylineMarkers(mp.surface)
	mp.polylines = append(mp.polylines, p)
	return p
}

// Polylines returns the components in order.
func (mp *MultiPolylineMarkers) Polylines() []*PolylineMarkers {
	return slices.Clone(mp.polylines)
}

func (mp *MultiPolylineMarkers) SetVisible(visible bool) {
	for _, p := range mp.polylines {
		p.SetVisible(visible)
	}
}

func (mp *MultiPolylineMarkers) SetVisibleMarkers(visible bool) {
	for _, p := range mp.polylines {
		p.SetVisibleMarkers(visible)
	}
}

func (mp *MultiPolylineMarkers) SetZIndex(zIndex float64) {
	for _, p := range mp.polylines {
		p.SetZIndex(zIndex)
	}
}

func (mp *MultiPolylineMarkers) IsValid() bool {
	for _, p := range mp.polylines {
		if !p.IsValid() {
			return false
		}
	}
	return true
}

// IsDeleted is true when every component is deleted.
func (mp *MultiPolylineMarkers) IsDeleted() bool {
	for _, p := range mp.polylines {
		if !p.IsDeleted() {
			return false
		}
	}
	return true
}

func (mp *MultiPolylineMarkers) Update() {
	for _, p := range mp.polylines {
		p.Update()
	}
}

func (mp *MultiPolylineMarkers) Remove() {
	for _, p := range mp.polylines {
		p.Remove()
	}
}

// Geometry returns the components that are not deleted.
func (mp *MultiPolylineMarkers) Geometry() geom.Geometry {
	lines := make([]geom.LineString, 0, len(mp.polylines))
	for _, p := range mp.polylines {
		if !p.IsDeleted() {
			lines = append(lines, geo.LineString(core.Positions(p.markers)))
		}
	}
	return geom.NewMultiLineString(lines).AsGeometry()
}

func (mp *MultiPolylineMarkers) owners() []ShapeMarkers {
	owners := make([]ShapeMarkers, 0, len(mp.polylines))
	for _, p := range mp.polylines {
		owners = append(owners, p)
	}
	return owners
}

// MultiPolygonMarkers groups polygons edited as one multi polygon.
type MultiPolygonMarkers struct {
	surface  render.Surface
	polygons []*PolygonMarkers
}

// NewMultiPolygonMarkers creates an empty multi polygon.
func NewMultiPolygonMarkers(surface render.Surface) *MultiPolygonMarkers {
	return &MultiPolygonMarkers{surface: surface}
}

// NewPolygon starts a new empty component and returns it.
func (mp *MultiPolygonMarkers) NewPolygon() *PolygonMarkers {
	p := NewPolygonMarkers(mp.surface)
	mp.polygons = append(mp.polygons, p)
	return p
}

// Polygons returns the components in order.
func (mp *MultiPolygonMarkers) Polygons() []*PolygonMarkers {
	return slices.Clone(mp.polygons)
}

func (mp *MultiPolygonMarkers) SetVisible(visible bool) {
	for _, p := range mp.polygons {
		p.SetVisible(visible)
	}
}

func (mp *MultiPolygonMarkers) SetVisibleMarkers(visible bool) {
	for _, p := range mp.polygons {
		p.SetVisibleMarkers(visible)
	}
}

func (mp *MultiPolygonMarkers) SetZIndex(zIndex float64) {
	for _, p := range mp.polygons {
		p.SetZIndex(zIndex)
	}
}

func (mp *MultiPolygonMarkers) IsValid() bool {
	for _, p := range mp.polygons {
		if !p.IsValid() {
			return false
		}
	}
	return true
}

// IsDeleted is true when every component is deleted.
func (mp *MultiPolygonMarkers) IsDeleted() bool {
	for _, p := range mp.polygons {
		if !p.IsDeleted() {
			return false
		}
	}
	return true
}

func (mp *MultiPolygonMarkers) Update() {
	for _, p := range mp.polygons {
		p.Update()
	}
}

func (mp *MultiPolygonMarkers) Remove() {
	for _, p := range mp.polygons {
		p.Remove()
	}
}

// Geometry returns the components that are not deleted.
func (mp *MultiPolygonMarkers) Geometry() geom.Geometry {
	polys := make([]geom.Polygon, 0, len(mp.polygons))
	for _, p := range mp.polygons {
		if !p.IsDeleted() {
			polys = append(polys, p.polygon())
		}
	}
	return geom.NewMultiPolygon(polys).AsGeometry()
}

func (mp *MultiPolygonMarkers) owners() []ShapeMarkers {
	var owners []ShapeMarkers
	for _, p := range mp.polygons {
		owners = append(owners, p.owners()...)
	}
	return owners
}
