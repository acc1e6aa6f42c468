package shape

import (
	"fmt"

	"github.com/OCAP2/mapedit/internal/geo"
	"github.com/OCAP2/mapedit/internal/render"
	"github.com/OCAP2/mapedit/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// Options control how a geometry is put on the map.
type Options struct {
	ZIndex         float64
	MarkersVisible bool
}

// DefaultOptions shows markers at z-index zero.
func DefaultOptions() Options {
	return Options{MarkersVisible: true}
}

// AddGeometry draws g on the surface as an editable shape, one marker per
// vertex, and registers the markers in index.
func AddGeometry(surface render.Surface, index *MarkerIndex, g geom.Geometry, opts Options) (*Set, error) {
	if g.IsEmpty() {
		return nil, fmt.Errorf("empty %s: %w", g.Type(), ErrUnsupportedGeometry)
	}

	b := builder{surface: surface}
	var s Shape
	var parts []Shape

	switch g.Type() {
	case geom.TypePoint:
		pt, _ := g.AsPoint()
		s = b.point(pt)
	case geom.TypeMultiPoint:
		mp, _ := g.AsMultiPoint()
		s = b.multiPoint(mp)
	case geom.TypeLineString:
		ls, _ := g.AsLineString()
		s = b.polyline(NewPolylineMarkers(surface), ls)
	case geom.TypeMultiLineString:
		mls, _ := g.AsMultiLineString()
		multi := NewMultiPolylineMarkers(surface)
		for i := 0; i < mls.NumLineStrings(); i++ {
			parts = append(parts, b.polyline(multi.NewPolyline(), mls.LineStringN(i)))
		}
		s = multi
	case geom.TypePolygon:
		poly, _ := g.AsPolygon()
		s = b.polygon(NewPolygonMarkers(surface), poly)
	case geom.TypeMultiPolygon:
		mpoly, _ := g.AsMultiPolygon()
		multi := NewMultiPolygonMarkers(surface)
		for i := 0; i < mpoly.NumPolygons(); i++ {
			parts = append(parts, b.polygon(multi.NewPolygon(), mpoly.PolygonN(i)))
		}
		s = multi
	default:
		return nil, fmt.Errorf("%s: %w", g.Type(), ErrUnsupportedGeometry)
	}

	s.Update()
	if opts.ZIndex != 0 {
		s.SetZIndex(opts.ZIndex)
	}
	if !opts.MarkersVisible {
		s.SetVisibleMarkers(false)
	}

	if parts == nil {
		parts = []Shape{s}
	}
	index.Merge(composeIndex(surface, parts))
	return &Set{shape: s, index: index}, nil
}

// composeIndex builds one index per component and merges them, so a
// multi-geometry is indexed the same way as its parts would be alone.
func composeIndex(surface render.Surface, parts []Shape) *MarkerIndex {
	idx := NewMarkerIndex(surface)
	for _, part := range parts {
		component := NewMarkerIndex(surface)
		component.AddShape(part)
		idx.Merge(component)
	}
	return idx
}

type builder struct {
	surface render.Surface
}

func (b builder) markers(points []core.LatLng, add func(*core.Marker)) {
	for _, p := range points {
		add(b.surface.CreateMarker(p))
	}
}

func (b builder) point(pt geom.Point) *PointMarkers {
	p := NewPointMarkers(b.surface)
	if xy, ok := pt.XY(); ok {
		p.Add(b.surface.CreateMarker(geo.LatLngFromXY(xy)))
	}
	return p
}

func (b builder) multiPoint(mp geom.MultiPoint) *PointMarkers {
	p := NewMultiPointMarkers(b.surface)
	for i := 0; i < mp.NumPoints(); i++ {
		if xy, ok := mp.PointN(i).XY(); ok {
			p.Add(b.surface.CreateMarker(geo.LatLngFromXY(xy)))
		}
	}
	return p
}

func (b builder) polyline(p *PolylineMarkers, ls geom.LineString) *PolylineMarkers {
	b.markers(geo.PointsFromLineString(ls), p.Add)
	return p
}

func (b builder) polygon(p *PolygonMarkers, poly geom.Polygon) *PolygonMarkers {
	exterior, holes := geo.RingsFromPolygon(poly)
	b.markers(exterior, p.Add)
	for _, ring := range holes {
		b.markers(ring, p.NewHole().Add)
	}
	return p
}
