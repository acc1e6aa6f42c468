package shape

import (
	"errors"
	"testing"

	"github.com/OCAP2/mapedit/internal/geo"
	"github.com/OCAP2/mapedit/internal/render/memory"
	"github.com/OCAP2/mapedit/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddGeometry_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		wkt     string
		markers int
		facades int
	}{
		{"point", "POINT(2 1)", 1, 0},
		{"multipoint", "MULTIPOINT(1 2,3 4,5 6)", 3, 0},
		{"linestring", "LINESTRING(0 0,2 1,4 3)", 3, 1},
		{"multilinestring", "MULTILINESTRING((0 0,1 1),(2 2,3 3,4 4))", 5, 2},
		{"polygon", "POLYGON((0 0,10 0,10 10,0 10,0 0))", 4, 1},
		{"polygon with hole", "POLYGON((0 0,10 0,10 10,0 10,0 0),(2 2,4 2,4 4,2 2))", 7, 1},
		{"multipolygon", "MULTIPOLYGON(((0 0,1 0,1 1,0 0)),((5 5,6 5,6 6,5 6,5 5)))", 7, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := memory.New()
			idx := NewMarkerIndex(s)
			g, err := geo.ParseWKT(tt.wkt)
			require.NoError(t, err)

			set, err := AddGeometry(s, idx, g, DefaultOptions())
			require.NoError(t, err)

			assert.Equal(t, tt.markers, s.MarkerCount())
			assert.Equal(t, tt.markers, idx.Len())
			assert.Equal(t, tt.facades, s.FacadeCount())
			assert.True(t, set.IsValid())
			assert.Equal(t, g.AsText(), set.Geometry().AsText())
		})
	}
}

func TestAddGeometry_PointCoordinates(t *testing.T) {
	s := memory.New()
	g, err := geo.ParseWKT("POINT(2 1)")
	require.NoError(t, err)

	set, err := AddGeometry(s, NewMarkerIndex(s), g, DefaultOptions())
	require.NoError(t, err)

	owners := set.Editable()
	require.Len(t, owners, 1)
	markers := owners[0].Markers()
	require.Len(t, markers, 1)
	assert.Equal(t, core.LatLng{Lat: 1, Lng: 2}, markers[0].Position)
}

func TestAddGeometry_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		wkt  string
	}{
		{"collection", "GEOMETRYCOLLECTION(POINT(1 2))"},
		{"empty polygon", "POLYGON EMPTY"},
		{"empty linestring", "LINESTRING EMPTY"},
		{"empty point", "POINT EMPTY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := memory.New()
			idx := NewMarkerIndex(s)
			g, err := geo.ParseWKT(tt.wkt)
			require.NoError(t, err)

			set, err := AddGeometry(s, idx, g, DefaultOptions())
			assert.Nil(t, set)
			assert.True(t, errors.Is(err, ErrUnsupportedGeometry))
			assert.Equal(t, 0, s.MarkerCount())
			assert.True(t, idx.IsEmpty())
		})
	}
}

func TestAddGeometry_Options(t *testing.T) {
	s := memory.New()
	g, err := geo.ParseWKT("POLYGON((0 0,10 0,10 10,0 10,0 0))")
	require.NoError(t, err)

	set, err := AddGeometry(s, NewMarkerIndex(s), g, Options{ZIndex: 5, MarkersVisible: false})
	require.NoError(t, err)

	p, ok := set.Shape().(*PolygonMarkers)
	require.True(t, ok)
	f, _ := s.Facade(p.Facade())
	assert.Equal(t, 5.0, f.ZIndex)
	assert.True(t, f.Visible)
	for _, m := range p.Markers() {
		assert.False(t, m.Visible)
		assert.Equal(t, 5.0, m.ZIndex)
	}
}

func TestAddGeometry_HoleOwnership(t *testing.T) {
	s := memory.New()
	idx := NewMarkerIndex(s)
	g, err := geo.ParseWKT("POLYGON((0 0,10 0,10 10,0 10,0 0),(2 2,4 2,4 4,2 2))")
	require.NoError(t, err)

	set, err := AddGeometry(s, idx, g, DefaultOptions())
	require.NoError(t, err)

	p := set.Shape().(*PolygonMarkers)
	require.Len(t, p.Holes(), 1)
	hole := p.Holes()[0]
	for _, m := range hole.Markers() {
		owner, ok := idx.Lookup(m.ID)
		require.True(t, ok)
		assert.Same(t, hole, owner)
	}
}

func TestAddGeometry_MultiPolygonComponentOwnership(t *testing.T) {
	s := memory.New()
	idx := NewMarkerIndex(s)
	g, err := geo.ParseWKT("MULTIPOLYGON(((0 0,10 0,10 10,0 10,0 0)),((20 20,30 20,30 30,20 20)))")
	require.NoError(t, err)

	set, err := AddGeometry(s, idx, g, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 7, idx.Len())
	for _, p := range set.Shape().(*MultiPolygonMarkers).Polygons() {
		for _, m := range p.Markers() {
			owner, ok := idx.Lookup(m.ID)
			require.True(t, ok)
			assert.Same(t, p, owner)
		}
	}
}
