// Package render defines the map surface the editing core draws onto.
package render

import "github.com/OCAP2/mapedit/pkg/core"

// Surface is the map rendering surface. It owns marker handles and overlay
// facades; the editing core only drives it.
type Surface interface {
	// Marker handles
	CreateMarker(position core.LatLng) *core.Marker
	RemoveMarker(m *core.Marker)
	SetMarkerVisible(m *core.Marker, visible bool)
	SetMarkerZIndex(m *core.Marker, zIndex float64)
	SetMarkerPosition(m *core.Marker, position core.LatLng)

	// Overlay facades
	CreatePolyline(points []core.LatLng) core.FacadeID
	CreatePolygon(points []core.LatLng, holes [][]core.LatLng) core.FacadeID
	UpdateFacade(id core.FacadeID, points []core.LatLng, holes [][]core.LatLng)
	RemoveFacade(id core.FacadeID)
	SetFacadeVisible(id core.FacadeID, visible bool)
	SetFacadeZIndex(id core.FacadeID, zIndex float64)
}
