// Package memory stores finished routes in memory and exports each one as a
// GeoJSON file, optionally gzip-compressed.
package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/trailsketch/trailsketch/internal/config"
	"github.com/trailsketch/trailsketch/internal/route"
)

// RouteRecord groups a finished route with its export name.
type RouteRecord struct {
	Name     string
	SavedAt  time.Time
	Result   *route.Result
	FilePath string
}

// Backend stores route data in memory and exports to GeoJSON
type Backend struct {
	cfg    config.MemoryConfig
	now    func() time.Time
	routes []RouteRecord

	lastExportPath string
	mu             sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{cfg: cfg, now: time.Now}
}

// Init initializes the backend
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// Routes returns the saved records.
func (b *Backend) Routes() []RouteRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]RouteRecord(nil), b.routes...)
}

// GetExportedFilePath returns the path of the most recent export.
func (b *Backend) GetExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}

// SaveRoute records the route and writes its GeoJSON export.
func (b *Backend) SaveRoute(r *route.Result, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	path, err := b.export(r, name)
	if err != nil {
		return err
	}

	b.routes = append(b.routes, RouteRecord{
		Name:     name,
		SavedAt:  b.now(),
		Result:   r,
		FilePath: path,
	})
	b.lastExportPath = path
	return nil
}

// export writes the route's feature collection to the output directory.
func (b *Backend) export(r *route.Result, name string) (string, error) {
	safeName := strings.ReplaceAll(name, " ", "_")
	safeName = strings.ReplaceAll(safeName, ":", "_")
	timestamp := b.now().Format("20060102_150405")

	var filename string
	if b.cfg.CompressOutput {
		filename = fmt.Sprintf("%s_%s.geojson.gz", safeName, timestamp)
	} else {
		filename = fmt.Sprintf("%s_%s.geojson", safeName, timestamp)
	}
	outputPath := filepath.Join(b.cfg.OutputDir, filename)

	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	fc := r.FeatureCollection()
	if b.cfg.CompressOutput {
		gz := gzip.NewWriter(file)
		if err := json.NewEncoder(gz).Encode(fc); err != nil {
			gz.Close()
			return "", fmt.Errorf("failed to encode export: %w", err)
		}
		if err := gz.Close(); err != nil {
			return "", fmt.Errorf("failed to finish gzip stream: %w", err)
		}
	} else {
		enc := json.NewEncoder(file)
		enc.SetIndent("", "  ")
		if err := enc.Encode(fc); err != nil {
			return "", fmt.Errorf("failed to encode export: %w", err)
		}
	}

	return outputPath, nil
}
