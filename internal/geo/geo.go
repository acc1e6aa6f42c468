package geo

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/OCAP2/mapedit/pkg/core"
	"github.com/wroge/wgs84"
)

// Positions arrive from the surface as WGS84 decimal degrees (EPSG:4326).
// Web mercator (EPSG:3857) is only used for stored bounding boxes.

// ErrInvalidCoordinates is returned when the coordinates are invalid
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// LatLngFromString parses a string in the format "lat,lng" into a core.LatLng.
func LatLngFromString(coords string) (core.LatLng, error) {
	coordsSplit := strings.Split(coords, ",")
	if len(coordsSplit) != 2 {
		return core.LatLng{}, ErrInvalidCoordinates
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(coordsSplit[0]), 64)
	if err != nil {
		return core.LatLng{}, ErrInvalidCoordinates
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(coordsSplit[1]), 64)
	if err != nil {
		return core.LatLng{}, ErrInvalidCoordinates
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return core.LatLng{}, ErrInvalidCoordinates
	}
	return core.LatLng{Lat: lat, Lng: lng}, nil
}

// MaxMercatorLat is the latitude where web mercator reaches its square extent.
const MaxMercatorLat = 85.05112878

// To3857 projects a WGS84 coordinate to web mercator meters. Latitudes beyond
// MaxMercatorLat are clamped, so the poles map to the edge of the extent.
func To3857(p core.LatLng) (x, y float64) {
	f := wgs84.EPSG().Transform(4326, 3857)
	lat := math.Max(-MaxMercatorLat, math.Min(MaxMercatorLat, p.Lat))
	x, y, _ = f(p.Lng, lat, 0)
	return x, y
}

// From3857 converts web mercator meters back to a WGS84 coordinate.
func From3857(x, y float64) core.LatLng {
	f := wgs84.EPSG().Transform(3857, 4326)
	lng, lat, _ := f(x, y, 0)
	return core.LatLng{Lat: lat, Lng: lng}
}
