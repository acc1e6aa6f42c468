// Package convert provides functions to convert between GORM models and core models
package convert

import (
	"encoding/json"
	"fmt"

	"github.com/OCAP2/mapedit/internal/geo"
	"github.com/OCAP2/mapedit/internal/model"
	"github.com/OCAP2/mapedit/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
)

// propertiesToJSON converts feature properties to datatypes.JSON for DB storage.
func propertiesToJSON(props map[string]any) (datatypes.JSON, error) {
	if len(props) == 0 {
		return datatypes.JSON("{}"), nil
	}
	data, err := json.Marshal(props)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal properties: %w", err)
	}
	return datatypes.JSON(data), nil
}

// CoreToFeature converts a core.Feature to a GORM model.Feature.
func CoreToFeature(f core.Feature) (model.Feature, error) {
	props, err := propertiesToJSON(f.Properties)
	if err != nil {
		return model.Feature{}, err
	}

	minX, minY := geo.To3857(core.LatLng{Lat: f.Bounds.MinLat, Lng: f.Bounds.MinLng})
	maxX, maxY := geo.To3857(core.LatLng{Lat: f.Bounds.MaxLat, Lng: f.Bounds.MaxLng})

	return model.Feature{
		Name:         f.Name,
		GeometryType: f.Geometry.Type().String(),
		Geometry:     f.Geometry.AsBinary(),
		Properties:   props,
		MinLat:       f.Bounds.MinLat,
		MinLng:       f.Bounds.MinLng,
		MaxLat:       f.Bounds.MaxLat,
		MaxLng:       f.Bounds.MaxLng,
		MinX:         minX,
		MinY:         minY,
		MaxX:         maxX,
		MaxY:         maxY,
	}, nil
}

// FeatureToCore converts a GORM model.Feature back to a core.Feature.
func FeatureToCore(m model.Feature) (core.Feature, error) {
	g, err := geom.UnmarshalWKB(m.Geometry)
	if err != nil {
		return core.Feature{}, fmt.Errorf("failed to decode geometry of %q: %w", m.Name, err)
	}

	var props map[string]any
	if len(m.Properties) > 0 {
		if err := json.Unmarshal(m.Properties, &props); err != nil {
			return core.Feature{}, fmt.Errorf("failed to decode properties of %q: %w", m.Name, err)
		}
	}
	if len(props) == 0 {
		props = nil
	}

	return core.Feature{
		Name:     m.Name,
		Geometry: g,
		Bounds: core.Bounds{
			MinLat: m.MinLat,
			MinLng: m.MinLng,
			MaxLat: m.MaxLat,
			MaxLng: m.MaxLng,
		},
		Properties: props,
		UpdatedAt:  m.UpdatedAt,
	}, nil
}
