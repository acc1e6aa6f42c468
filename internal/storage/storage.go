// internal/storage/storage.go
package storage

import "github.com/OCAP2/mapedit/pkg/core"

// ErrNotFound is returned when no feature is stored under a name.
var ErrNotFound = core.ErrFeatureNotFound

// Backend is the interface all feature stores must satisfy.
// A store keeps the latest committed geometry per name, never an edit history.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// SaveFeature inserts or replaces the feature stored under f.Name.
	SaveFeature(f core.Feature) error
	LoadFeature(name string) (core.Feature, error)
	DeleteFeature(name string) error

	// ListFeatures returns all feature names in ascending order.
	ListFeatures() ([]string, error)
	// FeaturesIn returns the names of features whose bounds intersect b.
	FeaturesIn(b core.Bounds) ([]string, error)
}
