// pkg/core/types.go
package core

import "fmt"

// LatLng is a geographic coordinate in decimal degrees
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p LatLng) String() string {
	return fmt.Sprintf("%g,%g", p.Lat, p.Lng)
}

// Bounds is a lat/lng bounding box
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MinLng float64 `json:"minLng"`
	MaxLat float64 `json:"maxLat"`
	MaxLng float64 `json:"maxLng"`
}

// BoundsOf returns the bounding box of the given points and false if there are none.
func BoundsOf(points []LatLng) (Bounds, bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}
	b := Bounds{
		MinLat: points[0].Lat,
		MinLng: points[0].Lng,
		MaxLat: points[0].Lat,
		MaxLng: points[0].Lng,
	}
	for _, p := range points[1:] {
		b = b.Extend(p)
	}
	return b, true
}

// Extend grows the box to include p.
func (b Bounds) Extend(p LatLng) Bounds {
	b.MinLat = min(b.MinLat, p.Lat)
	b.MinLng = min(b.MinLng, p.Lng)
	b.MaxLat = max(b.MaxLat, p.Lat)
	b.MaxLng = max(b.MaxLng, p.Lng)
	return b
}

// Union returns the smallest box containing both.
func (b Bounds) Union(o Bounds) Bounds {
	b = b.Extend(LatLng{Lat: o.MinLat, Lng: o.MinLng})
	return b.Extend(LatLng{Lat: o.MaxLat, Lng: o.MaxLng})
}
