package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/finwellhq/personaflow/internal/catalog"
	"github.com/finwellhq/personaflow/internal/config"
	"github.com/finwellhq/personaflow/internal/engine"
	"github.com/finwellhq/personaflow/internal/storage"
)

// openStorage opens the configured database.
func openStorage() (*storage.SQLiteStorage, error) {
	dbPath := config.ExpandPath(viper.GetString("database.path"))
	if dbPath == "" {
		var err error
		dbPath, err = config.DefaultDatabasePath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path: %w", err)
		}
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}

// buildEngine wires the catalog, snapshot provider, and trace store into an
// assignment engine. The fallback persona comes from config and is validated
// at construction, so a bad value fails here rather than at assignment time.
func buildEngine(store *storage.SQLiteStorage) (*engine.AssignmentEngine, *catalog.Catalog, error) {
	cat, err := catalog.New(catalog.Config{
		FallbackPersonaID: viper.GetString("assignment.fallback_persona"),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build persona catalog: %w", err)
	}

	return engine.New(cat, store, store), cat, nil
}
