// pkg/core/marker.go
package core

// MarkerID identifies a marker handle, unique within a rendering session
type MarkerID string

// FacadeID identifies a rendered line or polygon overlay. Zero means none.
type FacadeID uint64

// Marker is a draggable vertex handle. The rendering surface owns it and
// mutates Position on drag; shapes only hold references to it.
type Marker struct {
	ID       MarkerID `json:"id"`
	Position LatLng   `json:"position"`
	Visible  bool     `json:"visible"`
	ZIndex   float64  `json:"zIndex"`
}

// Positions returns the positions of the markers in order.
func Positions(markers []*Marker) []LatLng {
	points := make([]LatLng, len(markers))
	for i, m := range markers {
		points[i] = m.Position
	}
	return points
}
