package model

import (
	"time"

	"gorm.io/datatypes"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&Feature{},
}

// Feature is the latest committed geometry stored under a name.
// Bounds are kept twice: lat/lng degrees for lookups and EPSG:3857 meters
// for tile queries.
type Feature struct {
	ID        uint      `json:"id" gorm:"primarykey;autoIncrement;"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name         string         `json:"name" gorm:"size:128;uniqueIndex:idx_feature_name"` // Unique feature name
	GeometryType string         `json:"geometryType" gorm:"size:32"`                       // Point, LineString, Polygon, ...
	Geometry     []byte         `json:"-"`                                                 // WKB encoding
	Properties   datatypes.JSON `json:"properties"`

	MinLat float64 `json:"minLat"`
	MinLng float64 `json:"minLng"`
	MaxLat float64 `json:"maxLat"`
	MaxLng float64 `json:"maxLng"`

	MinX float64 `json:"minX" gorm:"index:idx_feature_bbox_3857"` // EPSG:3857 meters
	MinY float64 `json:"minY" gorm:"index:idx_feature_bbox_3857"`
	MaxX float64 `json:"maxX" gorm:"index:idx_feature_bbox_3857"`
	MaxY float64 `json:"maxY" gorm:"index:idx_feature_bbox_3857"`
}

func (*Feature) TableName() string {
	return "features"
}
