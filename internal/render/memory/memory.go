// internal/render/memory/memory.go
package memory

import (
	"slices"
	"sync"

	"github.com/OCAP2/mapedit/pkg/core"
	"github.com/google/uuid"
)

// FacadeKind tells line overlays from polygon overlays
type FacadeKind int

const (
	KindPolyline FacadeKind = iota
	KindPolygon
)

// FacadeRecord is the rendered state of one overlay
type FacadeRecord struct {
	ID      core.FacadeID
	Kind    FacadeKind
	Points  []core.LatLng
	Holes   [][]core.LatLng
	Visible bool
	ZIndex  float64
	Updates int
}

// Surface renders markers and facades into memory
type Surface struct {
	markers map[core.MarkerID]*core.Marker
	facades map[core.FacadeID]*FacadeRecord

	idCounter core.FacadeID
	mu        sync.RWMutex
}

// New creates a new in-memory surface
func New() *Surface {
	return &Surface{
		markers: make(map[core.MarkerID]*core.Marker),
		facades: make(map[core.FacadeID]*FacadeRecord),
	}
}

// CreateMarker adds a visible marker handle with a fresh uuid.
func (s *Surface) CreateMarker(position core.LatLng) *core.Marker {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := &core.Marker{
		ID:       core.MarkerID(uuid.NewString()),
		Position: position,
		Visible:  true,
	}
	s.markers[m.ID] = m
	return m
}

// RemoveMarker drops the handle. Removing an unknown handle is a no-op.
func (s *Surface) RemoveMarker(m *core.Marker) {
	if m == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.markers, m.ID)
}

func (s *Surface) SetMarkerVisible(m *core.Marker, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.Visible = visible
}

func (s *Surface) SetMarkerZIndex(m *core.Marker, zIndex float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ZIndex = zIndex
}

func (s *Surface) SetMarkerPosition(m *core.Marker, position core.LatLng) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.Position = position
}

// Drag simulates a drag gesture finishing at position.
// Returns false if the marker is not on the surface.
func (s *Surface) Drag(id core.MarkerID, position core.LatLng) (*core.Marker, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.markers[id]
	if !ok {
		return nil, false
	}
	m.Position = position
	return m, true
}

func (s *Surface) CreatePolyline(points []core.LatLng) core.FacadeID {
	return s.createFacade(KindPolyline, points, nil)
}

func (s *Surface) CreatePolygon(points []core.LatLng, holes [][]core.LatLng) core.FacadeID {
	return s.createFacade(KindPolygon, points, holes)
}

func (s *Surface) createFacade(kind FacadeKind, points []core.LatLng, holes [][]core.LatLng) core.FacadeID {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.idCounter++
	s.facades[s.idCounter] = &FacadeRecord{
		ID:      s.idCounter,
		Kind:    kind,
		Points:  slices.Clone(points),
		Holes:   cloneHoles(holes),
		Visible: true,
	}
	return s.idCounter
}

// UpdateFacade replaces the points and holes of a facade in one step.
func (s *Surface) UpdateFacade(id core.FacadeID, points []core.LatLng, holes [][]core.LatLng) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.facades[id]
	if !ok {
		return
	}
	f.Points = slices.Clone(points)
	f.Holes = cloneHoles(holes)
	f.Updates++
}

func (s *Surface) RemoveFacade(id core.FacadeID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.facades, id)
}

func (s *Surface) SetFacadeVisible(id core.FacadeID, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.facades[id]; ok {
		f.Visible = visible
	}
}

func (s *Surface) SetFacadeZIndex(id core.FacadeID, zIndex float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.facades[id]; ok {
		f.ZIndex = zIndex
	}
}

// Marker returns the handle with the given id if it is still on the surface.
func (s *Surface) Marker(id core.MarkerID) (*core.Marker, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.markers[id]
	return m, ok
}

// Facade returns a copy of the rendered facade state.
func (s *Surface) Facade(id core.FacadeID) (FacadeRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.facades[id]
	if !ok {
		return FacadeRecord{}, false
	}
	rec := *f
	rec.Points = slices.Clone(f.Points)
	rec.Holes = cloneHoles(f.Holes)
	return rec, true
}

// MarkerCount returns the number of marker handles on the surface.
func (s *Surface) MarkerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.markers)
}

// FacadeCount returns the number of facades on the surface.
func (s *Surface) FacadeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.facades)
}

func cloneHoles(holes [][]core.LatLng) [][]core.LatLng {
	if holes == nil {
		return nil
	}
	out := make([][]core.LatLng, len(holes))
	for i, h := range holes {
		out[i] = slices.Clone(h)
	}
	return out
}
