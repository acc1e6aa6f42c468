// internal/storage/memory/memory.go
package memory

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/OCAP2/mapedit/pkg/core"
)

// Backend keeps features in memory. Nothing survives Close.
type Backend struct {
	features map[string]core.Feature
	mu       sync.RWMutex
}

// New creates a new in-memory feature store
func New() *Backend {
	return &Backend{
		features: make(map[string]core.Feature),
	}
}

func (b *Backend) Init() error {
	return nil
}

// Close drops all stored features.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.features = make(map[string]core.Feature)
	return nil
}

func (b *Backend) SaveFeature(f core.Feature) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	f.UpdatedAt = time.Now()
	b.features[f.Name] = f
	return nil
}

func (b *Backend) LoadFeature(name string) (core.Feature, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	f, ok := b.features[name]
	if !ok {
		return core.Feature{}, fmt.Errorf("%q: %w", name, core.ErrFeatureNotFound)
	}
	return f, nil
}

func (b *Backend) DeleteFeature(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.features[name]; !ok {
		return fmt.Errorf("%q: %w", name, core.ErrFeatureNotFound)
	}
	delete(b.features, name)
	return nil
}

func (b *Backend) ListFeatures() ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	names := make([]string, 0, len(b.features))
	for name := range b.features {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// FeaturesIn compares lat/lng bounds directly.
func (b *Backend) FeaturesIn(bounds core.Bounds) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	names := []string{}
	for name, f := range b.features {
		if intersects(f.Bounds, bounds) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

func intersects(a, b core.Bounds) bool {
	return a.MinLat <= b.MaxLat && a.MaxLat >= b.MinLat &&
		a.MinLng <= b.MaxLng && a.MaxLng >= b.MinLng
}
