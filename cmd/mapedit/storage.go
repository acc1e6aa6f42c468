package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/OCAP2/mapedit/internal/config"
	"github.com/OCAP2/mapedit/internal/database"
	"github.com/OCAP2/mapedit/internal/storage"
	gormstorage "github.com/OCAP2/mapedit/internal/storage/gorm"
	"github.com/rs/zerolog"
)

// store wraps the configured feature backend and, for gorm-backed stores, the
// database manager needed to dump an in-memory database.
type store struct {
	backend storage.Backend
	manager *database.Manager
}

func openStore(cfg config.StorageConfig, logOut io.Writer) (*store, error) {
	log := zerolog.New(logOut).With().Timestamp().Str("component", "storage").Logger()
	if lvl, err := zerolog.ParseLevel(config.GetString("logLevel")); err == nil {
		log = log.Level(lvl)
	}

	st := &store{}
	switch cfg.Driver {
	case "sqlite", "postgres":
		st.manager = database.NewManager(log)
		if err := st.manager.Connect(cfg); err != nil {
			return nil, err
		}
		st.backend = gormstorage.New(st.manager)
	default:
		b, err := storage.NewBackend(cfg, log)
		if err != nil {
			return nil, err
		}
		st.backend = b
	}

	if err := st.backend.Init(); err != nil {
		st.backend.Close()
		return nil, fmt.Errorf("failed to initialize %s store: %w", cfg.Driver, err)
	}
	return st, nil
}

// Dump writes the sqlite database to path.
func (s *store) Dump(path string) error {
	if s.manager == nil {
		return errors.New("dump requires a sqlite store")
	}
	return s.manager.DumpMemoryToDisk(path)
}

func (s *store) Close() error {
	return s.backend.Close()
}
