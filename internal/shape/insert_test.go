package shape

import (
	"math"
	"testing"

	"github.com/OCAP2/mapedit/internal/render/memory"
	"github.com/OCAP2/mapedit/pkg/core"
	"github.com/stretchr/testify/assert"
)

func ll(lat, lng float64) core.LatLng {
	return core.LatLng{Lat: lat, Lng: lng}
}

// planar treats lat/lng as plane coordinates so tests can hit exact ties.
func planar(a, b core.LatLng) float64 {
	return math.Hypot(a.Lat-b.Lat, a.Lng-b.Lng)
}

var square = []core.LatLng{ll(0, 0), ll(0, 10), ll(10, 10), ll(10, 0)}

func TestPolygonInsertIndex_SmallRingAppends(t *testing.T) {
	assert.Equal(t, 0, PolygonInsertIndex(ll(5, 5), nil))
	assert.Equal(t, 1, PolygonInsertIndex(ll(5, 5), []core.LatLng{ll(0, 0)}))
	assert.Equal(t, 2, PolygonInsertIndex(ll(-5, -5), []core.LatLng{ll(0, 0), ll(0, 10)}))
}

func TestPolygonInsertIndex_EdgeMidpoint(t *testing.T) {
	// Midpoint of edge A-B goes between A and B.
	assert.Equal(t, 1, PolygonInsertIndex(ll(0, 5), square))
}

func TestPolygonInsertIndex_NearestFirstVertex(t *testing.T) {
	// Nearest is A, and the previous neighbour D (wrapped) is closer than B:
	// insert at A's position, which sits between D and A.
	assert.Equal(t, 0, PolygonInsertIndex(ll(3, 0), square))
}

func TestPolygonInsertIndex_NearestLastVertexWraps(t *testing.T) {
	// Nearest is D (last). Its next neighbour A is closer than C, so the
	// insert position wraps to 0.
	assert.Equal(t, 0, PolygonInsertIndex(ll(7, 0), square))
}

func TestPolygonInsertIndex_BeforeNearest(t *testing.T) {
	// Nearest is C, previous neighbour B is closer than D.
	assert.Equal(t, 2, PolygonInsertIndex(ll(8, 9), square))
}

func TestPolygonInsertIndex_AfterNearest(t *testing.T) {
	// Nearest is C, next neighbour D is closer than B.
	assert.Equal(t, 3, PolygonInsertIndex(ll(9, 8), square))
}

func TestPolygonInsertIndex_NearestTieTakesLowestIndex(t *testing.T) {
	ring := []core.LatLng{ll(0, 0), ll(0, 2), ll(2, 2), ll(2, 0)}

	// Equidistant from all four; nearest is index 0, neighbours tie so
	// there is no move to the next position.
	assert.Equal(t, 0, polygonInsertIndex(ll(1, 1), ring, planar))
}

func TestPolylineInsertIndex_SmallChainAppends(t *testing.T) {
	assert.Equal(t, 0, PolylineInsertIndex(ll(1, 1), nil))
	assert.Equal(t, 1, PolylineInsertIndex(ll(-1, -1), []core.LatLng{ll(0, 0)}))
}

func TestPolylineInsertIndex_BeyondEnd(t *testing.T) {
	chain := []core.LatLng{ll(0, 0), ll(0, 10)}

	assert.Equal(t, 2, PolylineInsertIndex(ll(0, 20), chain))
}

func TestPolylineInsertIndex_BeforeStart(t *testing.T) {
	chain := []core.LatLng{ll(0, 0), ll(0, 10)}

	assert.Equal(t, 0, PolylineInsertIndex(ll(0, -5), chain))
}

func TestPolylineInsertIndex_InsideLastSegment(t *testing.T) {
	chain := []core.LatLng{ll(0, 0), ll(0, 10)}

	// Nearest is B, and the point is closer to A than B is: insert before B.
	assert.Equal(t, 1, PolylineInsertIndex(ll(0, 8), chain))
}

func TestPolylineInsertIndex_InsideFirstSegment(t *testing.T) {
	chain := []core.LatLng{ll(0, 0), ll(0, 10)}

	// Nearest is A, and the point is closer to B than A is: insert after A.
	assert.Equal(t, 1, PolylineInsertIndex(ll(0, 2), chain))
}

func TestPolylineInsertIndex_Interior(t *testing.T) {
	chain := []core.LatLng{ll(0, 0), ll(0, 10), ll(0, 20)}

	assert.Equal(t, 2, PolylineInsertIndex(ll(1, 12), chain), "next neighbour closer")
	assert.Equal(t, 1, PolylineInsertIndex(ll(1, 8), chain), "previous neighbour closer")
}

func TestPolylineInsertIndex_InteriorNoWrap(t *testing.T) {
	// Near the last vertex of an open chain, the first vertex is never a neighbour.
	chain := []core.LatLng{ll(0, 0), ll(0, 10), ll(10, 10), ll(10, 0)}

	assert.Equal(t, 4, PolylineInsertIndex(ll(7, 0), chain))
}

// The end-of-chain rules are literal: a tie extends past the last vertex
// (non-strict), but a tie never moves inside from the first vertex (strict).
func TestPolylineInsertIndex_LastVertexTieExtends(t *testing.T) {
	chain := []core.LatLng{ll(0, 0), ll(0, 10)}

	// planar(A, M) == planar(A, B) == 10 and B is nearest.
	assert.Equal(t, 2, polylineInsertIndex(ll(6, 8), chain, planar))
}

func TestPolylineInsertIndex_FirstVertexTieStaysBefore(t *testing.T) {
	chain := []core.LatLng{ll(0, 0), ll(0, 10)}

	// planar(B, M) == planar(B, A) == 10 and A is nearest.
	assert.Equal(t, 0, polylineInsertIndex(ll(6, 2), chain, planar))
}

func TestAddMarkerAsPolygon_Order(t *testing.T) {
	s := memory.New()
	var ring []*core.Marker
	for _, p := range square {
		ring = append(ring, s.CreateMarker(p))
	}
	m := s.CreateMarker(ll(0, 5))

	ring = AddMarkerAsPolygon(m, ring)

	assert.Equal(t, []core.LatLng{ll(0, 0), ll(0, 5), ll(0, 10), ll(10, 10), ll(10, 0)}, core.Positions(ring))
}

func TestAddMarkerAsPolyline_Order(t *testing.T) {
	s := memory.New()
	chain := []*core.Marker{s.CreateMarker(ll(0, 0)), s.CreateMarker(ll(0, 10))}

	chain = AddMarkerAsPolyline(s.CreateMarker(ll(0, 20)), chain)
	chain = AddMarkerAsPolyline(s.CreateMarker(ll(0, -5)), chain)

	assert.Equal(t, []core.LatLng{ll(0, -5), ll(0, 0), ll(0, 10), ll(0, 20)}, core.Positions(chain))
}
