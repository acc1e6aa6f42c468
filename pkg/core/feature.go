// pkg/core/feature.go
package core

import (
	"errors"
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
)

// ErrFeatureNotFound is returned by feature stores for unknown names.
var ErrFeatureNotFound = errors.New("feature not found")

// Feature is a committed edit result: a named geometry with its lat/lng
// bounds and free-form properties.
type Feature struct {
	Name       string         `json:"name"`
	Geometry   geom.Geometry  `json:"-"`
	Bounds     Bounds         `json:"bounds"`
	Properties map[string]any `json:"properties,omitempty"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}
