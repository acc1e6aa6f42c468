package geo

import (
	"math"

	"github.com/OCAP2/mapedit/pkg/core"
)

// EarthRadius is the mean earth radius in meters used for great-circle distances.
const EarthRadius = 6371009.0

// Distance returns the great-circle distance in meters between a and b on a
// spherical earth.
func Distance(a, b core.LatLng) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	h := haversine(lat2-lat1) + math.Cos(lat1)*math.Cos(lat2)*haversine(radians(b.Lng-a.Lng))
	return 2 * EarthRadius * math.Asin(math.Sqrt(math.Min(h, 1)))
}

func haversine(x float64) float64 {
	s := math.Sin(x / 2)
	return s * s
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
