// internal/storage/factory.go
package storage

import (
	"fmt"

	"github.com/OCAP2/mapedit/internal/config"
	"github.com/OCAP2/mapedit/internal/database"
	gormstorage "github.com/OCAP2/mapedit/internal/storage/gorm"
	"github.com/OCAP2/mapedit/internal/storage/memory"
	"github.com/rs/zerolog"
)

// NewBackend creates a feature store based on configuration. The returned
// backend still needs Init.
func NewBackend(cfg config.StorageConfig, log zerolog.Logger) (Backend, error) {
	switch cfg.Driver {
	case "memory":
		return memory.New(), nil
	case "sqlite", "postgres":
		m := database.NewManager(log)
		if err := m.Connect(cfg); err != nil {
			return nil, err
		}
		return gormstorage.New(m), nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}
}
