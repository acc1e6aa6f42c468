package shape

import (
	"slices"

	"github.com/OCAP2/mapedit/internal/geo"
	"github.com/OCAP2/mapedit/pkg/core"
)

type distanceFunc func(a, b core.LatLng) float64

// PolygonInsertIndex returns where p should be inserted into a closed ring
// so that it sits next to the closer neighbour of its nearest vertex.
func PolygonInsertIndex(p core.LatLng, ring []core.LatLng) int {
	return polygonInsertIndex(p, ring, geo.Distance)
}

// PolylineInsertIndex returns where p should be inserted into an open chain.
func PolylineInsertIndex(p core.LatLng, chain []core.LatLng) int {
	return polylineInsertIndex(p, chain, geo.Distance)
}

// AddMarkerAsPolygon inserts m into a ring of markers and returns the new ring.
func AddMarkerAsPolygon(m *core.Marker, markers []*core.Marker) []*core.Marker {
	i := PolygonInsertIndex(m.Position, core.Positions(markers))
	return slices.Insert(markers, i, m)
}

// AddMarkerAsPolyline inserts m into a chain of markers and returns the new chain.
func AddMarkerAsPolyline(m *core.Marker, markers []*core.Marker) []*core.Marker {
	i := PolylineInsertIndex(m.Position, core.Positions(markers))
	return slices.Insert(markers, i, m)
}

// distancesTo returns the distance from p to every point and the index of
// the nearest one. Ties go to the lowest index.
func distancesTo(p core.LatLng, points []core.LatLng, dist distanceFunc) ([]float64, int) {
	distances := make([]float64, len(points))
	nearest := 0
	for i, q := range points {
		distances[i] = dist(p, q)
		if distances[i] < distances[nearest] {
			nearest = i
		}
	}
	return distances, nearest
}

func polygonInsertIndex(p core.LatLng, ring []core.LatLng, dist distanceFunc) int {
	n := len(ring)
	if n <= 2 {
		return n
	}

	distances, k := distancesTo(p, ring, dist)
	before := (k - 1 + n) % n
	after := (k + 1) % n

	if distances[before] > distances[after] {
		return after
	}
	return k
}

func polylineInsertIndex(p core.LatLng, chain []core.LatLng, dist distanceFunc) int {
	n := len(chain)
	if n <= 1 {
		return n
	}

	distances, k := distancesTo(p, chain, dist)
	hasBefore := k > 0
	hasAfter := k < n-1

	switch {
	case hasBefore && hasAfter:
		if distances[k-1] > distances[k+1] {
			return k + 1
		}
	case hasBefore:
		// Nearest is the last vertex: extend the chain when p is at least as
		// far from the previous vertex as the last vertex is.
		if distances[k-1] >= dist(chain[k-1], chain[k]) {
			return k + 1
		}
	default:
		// Nearest is the first vertex: only go inside when p is strictly
		// closer to the next vertex than the first vertex is.
		if distances[k+1] < dist(chain[k+1], chain[k]) {
			return k + 1
		}
	}
	return k
}
