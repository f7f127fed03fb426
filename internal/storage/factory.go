package storage

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/trailsketch/trailsketch/internal/config"
	"github.com/trailsketch/trailsketch/internal/storage/gormdb"
	"github.com/trailsketch/trailsketch/internal/storage/memory"
)

// Create builds the storage backend named by the configuration.
func Create(cfg config.StorageConfig, sqlitePath string, log zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case "memory", "":
		return memory.New(cfg.Memory), nil
	case "sqlite":
		return gormdb.New(gormdb.ModeSQLite, sqlitePath, log), nil
	case "postgres":
		return gormdb.New(gormdb.ModePostgres, sqlitePath, log), nil
	}
	return nil, fmt.Errorf("unknown storage backend type: %s", cfg.Type)
}
