// Package gormdb persists finished routes through GORM, against Postgres or
// a local SQLite file.
package gormdb

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/trailsketch/trailsketch/internal/database"
	"github.com/trailsketch/trailsketch/internal/model/convert"
	"github.com/trailsketch/trailsketch/internal/route"
)

// Mode selects which driver the backend connects with.
type Mode int

const (
	// ModePostgres connects to Postgres, falling back to SQLite.
	ModePostgres Mode = iota
	// ModeSQLite goes straight to a local SQLite file.
	ModeSQLite
)

// Backend writes routes to a relational database.
type Backend struct {
	mgr  *database.Manager
	mode Mode
	log  zerolog.Logger
}

// New creates a database-backed storage backend. sqlitePath is only used in
// ModeSQLite; empty means in-memory.
func New(mode Mode, sqlitePath string, log zerolog.Logger) *Backend {
	mgr := database.NewManager(log)
	mgr.SqliteFilePath = sqlitePath
	return &Backend{mgr: mgr, mode: mode, log: log}
}

// Init connects and migrates the schema.
func (b *Backend) Init() error {
	switch b.mode {
	case ModeSQLite:
		db, err := b.mgr.GetSqliteDB(b.mgr.SqliteFilePath)
		if err != nil {
			return fmt.Errorf("sqlite connect: %w", err)
		}
		b.mgr.DB = db
		b.mgr.ShouldSaveLocal = true
		b.mgr.IsValid = true
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("sqlite sql interface: %w", err)
		}
		b.mgr.SqlDB = sqlDB
	default:
		if err := b.mgr.Connect(); err != nil {
			return err
		}
	}
	return b.mgr.Setup()
}

// Close releases the connection.
func (b *Backend) Close() error {
	return b.mgr.Close()
}

// SaveRoute converts and inserts one finished route.
func (b *Backend) SaveRoute(r *route.Result, name string) error {
	rec, err := convert.ResultToRoute(r, name, time.Now())
	if err != nil {
		return fmt.Errorf("convert route: %w", err)
	}
	if err := b.mgr.DB.Create(&rec).Error; err != nil {
		return fmt.Errorf("insert route: %w", err)
	}
	b.log.Info().Str("name", name).Uint("id", rec.ID).Msg("route saved")
	return nil
}
