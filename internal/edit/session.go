// Package edit keeps the state of one editing session: the shapes on the
// map, the shared marker index and the shape that receives new markers.
package edit

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"github.com/OCAP2/mapedit/internal/render"
	"github.com/OCAP2/mapedit/internal/shape"
	"github.com/OCAP2/mapedit/internal/storage"
	"github.com/OCAP2/mapedit/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

var (
	ErrNoActiveShape = errors.New("no active shape")
	ErrUnknownMarker = errors.New("unknown marker")
	ErrUnknownShape  = errors.New("unknown shape")
	// ErrInvalidShape is returned when committing a shape with a ring or chain
	// that has too few markers.
	ErrInvalidShape = errors.New("invalid shape")
)

// Session is not safe for concurrent use. Surface events must be fed to it
// one at a time, which the dispatcher does.
type Session struct {
	surface render.Surface
	index   *shape.MarkerIndex
	sets    map[string]*shape.Set
	logger  *slog.Logger

	active     shape.ShapeMarkers
	activeName string
}

// NewSession creates an empty session drawing on surface.
func NewSession(surface render.Surface, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		surface: surface,
		index:   shape.NewMarkerIndex(surface),
		sets:    make(map[string]*shape.Set),
		logger:  logger,
	}
}

// Index returns the marker index shared by every shape of the session.
func (s *Session) Index() *shape.MarkerIndex {
	return s.index
}

// Active returns the shape receiving new markers and the name of its set.
func (s *Session) Active() (shape.ShapeMarkers, string) {
	return s.active, s.activeName
}

// Names returns the loaded shape names in ascending order.
func (s *Session) Names() []string {
	names := make([]string, 0, len(s.sets))
	for name := range s.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Set returns the named shape set.
func (s *Session) Set(name string) (*shape.Set, error) {
	set, ok := s.sets[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownShape)
	}
	return set, nil
}

// Load puts g on the map under name, replacing any shape already loaded
// under it. The first editable part becomes active.
func (s *Session) Load(name string, g geom.Geometry, opts shape.Options) (*shape.Set, error) {
	set, err := shape.AddGeometry(s.surface, s.index, g, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", name, err)
	}

	if _, ok := s.sets[name]; ok {
		if err := s.Remove(name); err != nil {
			return nil, err
		}
	}
	s.sets[name] = set

	if parts := set.Editable(); len(parts) > 0 {
		s.active, s.activeName = parts[0], name
	}

	s.logger.Debug("shape loaded", "name", name, "type", g.Type().String(), "markers", s.index.Len())
	return set, nil
}

// Select makes part of the named shape active. Part 0 is the first polygon
// or line; holes follow their polygon.
func (s *Session) Select(name string, part int) error {
	set, err := s.Set(name)
	if err != nil {
		return err
	}
	parts := set.Editable()
	if part < 0 || part >= len(parts) {
		return fmt.Errorf("part %d of %q (has %d): %w", part, name, len(parts), ErrNoActiveShape)
	}
	s.active, s.activeName = parts[part], name
	return nil
}

// Deselect clears the active shape. New markers become bare markers.
func (s *Session) Deselect() {
	s.active, s.activeName = nil, ""
}

// AddMarker handles a tap on the map: a marker is created at pos and, if a
// shape is active, placed into it by the insertion policy.
func (s *Session) AddMarker(pos core.LatLng) *core.Marker {
	m := s.surface.CreateMarker(pos)
	if s.active == nil {
		s.index.AddBare(m)
		s.logger.Debug("bare marker added", "id", m.ID, "position", pos.String())
		return m
	}
	s.active.AddNew(m)
	s.index.Add(m, s.active)
	s.active.Update()
	s.logger.Debug("marker added", "id", m.ID, "shape", s.activeName, "position", pos.String())
	return m
}

// DragEnd redraws the owner of a marker whose drag just finished.
func (s *Session) DragEnd(id core.MarkerID) error {
	if !s.index.Contains(id) {
		return fmt.Errorf("%s: %w", id, ErrUnknownMarker)
	}
	if owner, ok := s.index.Lookup(id); ok {
		owner.Update()
	}
	return nil
}

// MoveMarker repositions a marker programmatically and redraws its owner.
func (s *Session) MoveMarker(id core.MarkerID, pos core.LatLng) error {
	m, ok := s.index.Marker(id)
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrUnknownMarker)
	}
	s.surface.SetMarkerPosition(m, pos)
	return s.DragEnd(id)
}

// DeleteMarker removes a marker from its owner, the index and the map.
func (s *Session) DeleteMarker(id core.MarkerID) error {
	if !s.index.Delete(id) {
		return fmt.Errorf("%s: %w", id, ErrUnknownMarker)
	}
	s.logger.Debug("marker deleted", "id", id)
	return nil
}

// StartHole adds a hole to the active polygon and makes the hole active.
func (s *Session) StartHole() (shape.ShapeMarkers, error) {
	if s.active == nil {
		return nil, ErrNoActiveShape
	}
	child, err := s.active.CreateChild()
	if err != nil {
		return nil, fmt.Errorf("start hole in %q: %w", s.activeName, err)
	}
	s.active = child
	return child, nil
}

// Transfer hands a registered marker, bare or owned, to the active shape.
func (s *Session) Transfer(id core.MarkerID) error {
	if s.active == nil {
		return ErrNoActiveShape
	}
	if !s.index.Move(id, s.active) {
		return fmt.Errorf("%s: %w", id, ErrUnknownMarker)
	}
	return nil
}

// Geometry exports the current state of the named shape.
func (s *Session) Geometry(name string) (geom.Geometry, error) {
	set, err := s.Set(name)
	if err != nil {
		return geom.Geometry{}, err
	}
	return set.Geometry(), nil
}

// Remove takes the named shape off the map and forgets its markers.
func (s *Session) Remove(name string) error {
	set, err := s.Set(name)
	if err != nil {
		return err
	}
	if s.active != nil && slices.Contains(set.Editable(), s.active) {
		s.Deselect()
	}
	set.Remove()
	delete(s.sets, name)
	return nil
}

// PruneHoles drops the deleted holes of the named shape. When the active hole
// is among them, its polygon becomes active.
func (s *Session) PruneHoles(name string) (int, error) {
	set, err := s.Set(name)
	if err != nil {
		return 0, err
	}
	n := set.PruneHoles()
	if hole, ok := s.active.(*shape.PolygonHoleMarkers); ok && !slices.Contains(hole.Parent().Holes(), hole) {
		s.active = hole.Parent()
	}
	if n > 0 {
		s.logger.Debug("holes pruned", "name", name, "count", n)
	}
	return n, nil
}

// Clear removes every shape and bare marker from the map.
func (s *Session) Clear() {
	for _, name := range s.Names() {
		if set, ok := s.sets[name]; ok {
			set.Remove()
		}
	}
	for _, m := range s.index.Bare() {
		s.surface.RemoveMarker(m)
	}
	s.index.Reset()
	s.sets = make(map[string]*shape.Set)
	s.Deselect()
	s.logger.Debug("session cleared")
}

func (s *Session) SetVisible(name string, visible bool) error {
	set, err := s.Set(name)
	if err != nil {
		return err
	}
	set.SetVisible(visible)
	return nil
}

func (s *Session) SetMarkersVisible(name string, visible bool) error {
	set, err := s.Set(name)
	if err != nil {
		return err
	}
	set.SetVisibleMarkers(visible)
	return nil
}

// Feature snapshots the named shape for a feature store.
func (s *Session) Feature(name string) (core.Feature, error) {
	set, err := s.Set(name)
	if err != nil {
		return core.Feature{}, err
	}
	b, _ := set.Bounds()
	return core.Feature{
		Name:     name,
		Geometry: set.Geometry(),
		Bounds:   b,
	}, nil
}

// Commit saves the current geometry of the named shape to store. Shapes that
// are not valid are refused with ErrInvalidShape.
func (s *Session) Commit(store storage.Backend, name string) error {
	set, err := s.Set(name)
	if err != nil {
		return err
	}
	if !set.IsValid() {
		return fmt.Errorf("commit %q: %w", name, ErrInvalidShape)
	}
	f, err := s.Feature(name)
	if err != nil {
		return err
	}
	if err := store.SaveFeature(f); err != nil {
		return err
	}
	s.logger.Info("feature committed", "name", name, "type", f.Geometry.Type().String())
	return nil
}

// Open loads a stored feature into the session under its own name.
func (s *Session) Open(store storage.Backend, name string, opts shape.Options) (*shape.Set, error) {
	f, err := store.LoadFeature(name)
	if err != nil {
		return nil, err
	}
	return s.Load(name, f.Geometry, opts)
}
