// Package gormstorage implements the storage.Backend interface on top of a
// GORM database opened by database.Manager (SQLite or PostgreSQL).
package gormstorage

import (
	"errors"
	"fmt"

	"github.com/OCAP2/mapedit/internal/database"
	"github.com/OCAP2/mapedit/internal/geo"
	"github.com/OCAP2/mapedit/internal/model"
	"github.com/OCAP2/mapedit/internal/model/convert"
	"github.com/OCAP2/mapedit/pkg/core"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Backend stores features in a relational database.
type Backend struct {
	manager *database.Manager
	db      *gorm.DB
}

// New creates a backend on a connected manager.
func New(manager *database.Manager) *Backend {
	return &Backend{
		manager: manager,
		db:      manager.DB,
	}
}

// Init migrates the schema.
func (b *Backend) Init() error {
	return b.manager.Setup()
}

// Close closes the database connection.
func (b *Backend) Close() error {
	return b.manager.Close()
}

// SaveFeature upserts by name. The creation time of an existing row is kept.
func (b *Backend) SaveFeature(f core.Feature) error {
	row, err := convert.CoreToFeature(f)
	if err != nil {
		return err
	}

	err = b.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"updated_at", "geometry_type", "geometry", "properties",
			"min_lat", "min_lng", "max_lat", "max_lng",
			"min_x", "min_y", "max_x", "max_y",
		}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save feature %q: %w", f.Name, err)
	}

	b.manager.Logger.Debug().Str("name", f.Name).Str("type", row.GeometryType).Msg("Saved feature")
	return nil
}

func (b *Backend) LoadFeature(name string) (core.Feature, error) {
	var row model.Feature
	err := b.db.Where("name = ?", name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return core.Feature{}, fmt.Errorf("%q: %w", name, core.ErrFeatureNotFound)
	}
	if err != nil {
		return core.Feature{}, fmt.Errorf("failed to load feature %q: %w", name, err)
	}
	return convert.FeatureToCore(row)
}

func (b *Backend) DeleteFeature(name string) error {
	result := b.db.Where("name = ?", name).Delete(&model.Feature{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete feature %q: %w", name, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%q: %w", name, core.ErrFeatureNotFound)
	}
	return nil
}

func (b *Backend) ListFeatures() ([]string, error) {
	names := []string{}
	err := b.db.Model(&model.Feature{}).Order("name").Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list features: %w", err)
	}
	return names, nil
}

// FeaturesIn matches on the EPSG:3857 bounding box columns.
func (b *Backend) FeaturesIn(bounds core.Bounds) ([]string, error) {
	minX, minY := geo.To3857(core.LatLng{Lat: bounds.MinLat, Lng: bounds.MinLng})
	maxX, maxY := geo.To3857(core.LatLng{Lat: bounds.MaxLat, Lng: bounds.MaxLng})

	names := []string{}
	err := b.db.Model(&model.Feature{}).
		Where("min_x <= ? AND max_x >= ? AND min_y <= ? AND max_y >= ?", maxX, minX, maxY, minY).
		Order("name").
		Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query features: %w", err)
	}
	return names, nil
}
