package geo

import (
	"fmt"

	"github.com/OCAP2/mapedit/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// Geometries use X = longitude, Y = latitude.

// XY converts a coordinate into a geom.XY.
func XY(p core.LatLng) geom.XY {
	return geom.XY{X: p.Lng, Y: p.Lat}
}

// LatLngFromXY converts a geom.XY into a coordinate.
func LatLngFromXY(xy geom.XY) core.LatLng {
	return core.LatLng{Lat: xy.Y, Lng: xy.X}
}

// Point builds a geom.Point at p.
func Point(p core.LatLng) geom.Point {
	return geom.NewPoint(geom.Coordinates{
		XY:   XY(p),
		Type: geom.DimXY,
	})
}

// LineString builds an open geom.LineString through points.
// An empty slice gives an empty line string.
func LineString(points []core.LatLng) geom.LineString {
	if len(points) == 0 {
		return geom.LineString{}
	}
	flat := make([]float64, 0, len(points)*2)
	for _, p := range points {
		flat = append(flat, p.Lng, p.Lat)
	}
	return geom.NewLineString(geom.NewSequence(flat, geom.DimXY))
}

// Ring builds a closed geom.LineString, repeating the first point at the end.
// The closing point is always added, even when the last vertex already sits on
// the first one, so PointsFromRing gives back every vertex.
func Ring(points []core.LatLng) geom.LineString {
	if len(points) == 0 {
		return geom.LineString{}
	}
	closed := make([]core.LatLng, 0, len(points)+1)
	closed = append(closed, points...)
	closed = append(closed, points[0])
	return LineString(closed)
}

// Polygon builds a geom.Polygon from an exterior ring and its holes.
// Holes with no points are skipped. An empty exterior gives an empty polygon.
func Polygon(exterior []core.LatLng, holes [][]core.LatLng) geom.Polygon {
	if len(exterior) == 0 {
		return geom.Polygon{}
	}
	rings := make([]geom.LineString, 0, len(holes)+1)
	rings = append(rings, Ring(exterior))
	for _, hole := range holes {
		if len(hole) == 0 {
			continue
		}
		rings = append(rings, Ring(hole))
	}
	return geom.NewPolygon(rings)
}

// PointsFromLineString returns the vertices of ls in order.
func PointsFromLineString(ls geom.LineString) []core.LatLng {
	seq := ls.Coordinates()
	points := make([]core.LatLng, seq.Length())
	for i := range points {
		points[i] = LatLngFromXY(seq.GetXY(i))
	}
	return points
}

// PointsFromRing returns the vertices of a closed ring without the repeated
// closing vertex.
func PointsFromRing(ls geom.LineString) []core.LatLng {
	points := PointsFromLineString(ls)
	if n := len(points); n > 1 && points[0] == points[n-1] {
		points = points[:n-1]
	}
	return points
}

// RingsFromPolygon returns the exterior ring and holes of p, unclosed.
func RingsFromPolygon(p geom.Polygon) (exterior []core.LatLng, holes [][]core.LatLng) {
	exterior = PointsFromRing(p.ExteriorRing())
	for i := 0; i < p.NumInteriorRings(); i++ {
		holes = append(holes, PointsFromRing(p.InteriorRingN(i)))
	}
	return exterior, holes
}

// ParseWKT parses a WKT string into a geometry.
func ParseWKT(wkt string) (geom.Geometry, error) {
	g, err := geom.UnmarshalWKT(wkt)
	if err != nil {
		return geom.Geometry{}, fmt.Errorf("failed to parse WKT: %w", err)
	}
	return g, nil
}
