// Package telemetry reports per-session engine metrics to InfluxDB, with a
// gzip line-protocol backup file when the server is unreachable.
package telemetry

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/trailsketch/trailsketch/internal/route"
)

// SessionBucket is the bucket session points are written to.
const SessionBucket = "sketch_sessions"

// Manager handles InfluxDB connections and writes.
type Manager struct {
	Client       influxdb2.Client
	Writer       influxdb2_api.WriteAPI
	BackupWriter *gzip.Writer
	IsValid      bool
	Logger       zerolog.Logger
	BackupPath   string
}

// NewManager creates a new InfluxDB manager.
func NewManager(log zerolog.Logger, backupPath string) *Manager {
	return &Manager{
		IsValid:    false,
		Logger:     log,
		BackupPath: backupPath,
	}
}

// Connect establishes a connection to InfluxDB. When the server cannot be
// reached, points are appended to the gzip backup file instead.
func (m *Manager) Connect() error {
	if !viper.GetBool("influx.enabled") {
		return errors.New("influx.enabled is false")
	}

	m.Client = influxdb2.NewClientWithOptions(
		fmt.Sprintf(
			"%s://%s:%s",
			viper.GetString("influx.protocol"),
			viper.GetString("influx.host"),
			viper.GetString("influx.port"),
		),
		viper.GetString("influx.token"),
		influxdb2.DefaultOptions().
			SetBatchSize(500).
			SetFlushInterval(1000),
	)

	// validate client connection health
	running, err := m.Client.Ping(context.Background())
	if err != nil || !running {
		m.IsValid = false
		if m.BackupWriter == nil {
			m.Logger.Info().Str("backupPath", m.BackupPath).
				Msg("Failed to initialize InfluxDB client, writing to backup file")

			file, err := os.OpenFile(m.BackupPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
			if err != nil {
				return fmt.Errorf("error creating backup file: %v", err)
			}
			m.BackupWriter = gzip.NewWriter(file)
		}
		return nil
	}

	m.IsValid = true
	m.Writer = m.Client.WriteAPI(viper.GetString("influx.org"), SessionBucket)
	return nil
}

// RecordSession writes one point summarizing a finished drawing session.
func (m *Manager) RecordSession(r *route.Result, elapsed time.Duration) {
	snapped := 0
	for _, v := range r.Vertices {
		if v.Snapped {
			snapped++
		}
	}
	trailSegs := 0
	for _, s := range r.Segments {
		if s.TrailSnapped {
			trailSegs++
		}
	}

	point := influxdb2_write.NewPoint(
		"sketch_session",
		map[string]string{},
		map[string]interface{}{
			"vertices":            len(r.Vertices),
			"snapped_vertices":    snapped,
			"segments":            len(r.Segments),
			"trail_segments":      trailSegs,
			"spurs":               len(r.Spurs),
			"main_distance_mi":    r.MainDistanceMi,
			"dayhike_distance_mi": r.DayhikeDistanceMi,
			"elapsed_ms":          elapsed.Milliseconds(),
		},
		time.Now(),
	)

	if m.IsValid {
		m.Writer.WritePoint(point)
		return
	}
	if m.BackupWriter != nil {
		line := influxdb2_write.PointToLineProtocol(point, time.Millisecond)
		if _, err := m.BackupWriter.Write([]byte(line)); err != nil {
			m.Logger.Error().Err(err).Msg("Failed to write session point to backup")
		}
	}
}

// Close flushes and shuts down the client and backup writer.
func (m *Manager) Close() error {
	if m.Writer != nil {
		m.Writer.Flush()
	}
	if m.Client != nil {
		m.Client.Close()
	}
	if m.BackupWriter != nil {
		return m.BackupWriter.Close()
	}
	return nil
}
