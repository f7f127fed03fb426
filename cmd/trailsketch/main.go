// Command trailsketch loads a trail network, replays a sketch script
// against the drawing engine and hands finished routes to the configured
// storage backend.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/trailsketch/trailsketch/internal/config"
	"github.com/trailsketch/trailsketch/internal/dispatcher"
	"github.com/trailsketch/trailsketch/internal/engine"
	"github.com/trailsketch/trailsketch/internal/geo"
	"github.com/trailsketch/trailsketch/internal/geojson"
	"github.com/trailsketch/trailsketch/internal/index"
	"github.com/trailsketch/trailsketch/internal/logging"
	"github.com/trailsketch/trailsketch/internal/queue"
	"github.com/trailsketch/trailsketch/internal/route"
	"github.com/trailsketch/trailsketch/internal/storage"
	"github.com/trailsketch/trailsketch/internal/telemetry"
)

// scriptEvent is one entry of the replay script file.
type scriptEvent struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

func main() {
	configDir := flag.String("config", ".", "directory containing trailsketch.cfg.json")
	trailsFile := flag.String("trails", "", "trail network GeoJSON file (required)")
	scriptFile := flag.String("script", "", "sketch script JSON file (required)")
	flag.Parse()

	if *trailsFile == "" || *scriptFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := config.Load(*configDir); err != nil {
		// Defaults cover everything; a missing config file is not fatal.
		fmt.Fprintf(os.Stderr, "config: %v (using defaults)\n", err)
	}

	logOpts := logging.Options{Level: viper.GetString("logLevel")}
	if viper.GetBool("graylog.enabled") {
		logOpts.GraylogAddress = viper.GetString("graylog.address")
	}
	log := logging.Setup(logOpts)

	proj := geo.NewProjector(config.Zoom())
	ix := index.New(proj)

	trailCount, err := loadTrails(ix, *trailsFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", *trailsFile).Msg("failed to load trail network")
	}
	log.Info().Int("trails", trailCount).Msg("trail network loaded")

	sessionStart := time.Now()
	storageCfg := config.GetStorageConfig()
	sqlitePath := filepath.Join(".", fmt.Sprintf("trailsketch_%s.db", sessionStart.Format("20060102_150405")))
	backend, err := storage.Create(storageCfg, sqlitePath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create storage backend")
	}
	if err := backend.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage backend")
	}
	defer backend.Close()

	var tele *telemetry.Manager
	if viper.GetBool("influx.enabled") {
		tele = telemetry.NewManager(log, filepath.Join(".", "trailsketch_metrics.gz"))
		if err := tele.Connect(); err != nil {
			log.Warn().Err(err).Msg("telemetry disabled")
			tele = nil
		} else {
			defer tele.Close()
		}
	}

	session := route.NewSession(proj, ix, config.SessionConfig(), log)

	disp, err := dispatcher.New(logging.NewDispatcherLogger(log))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create dispatcher")
	}
	mgr := engine.NewManager(engine.Dependencies{
		Session:   session,
		Telemetry: tele,
		Log:       log,
	}, backend)
	mgr.RegisterHandlers(disp)

	events, err := loadScript(*scriptFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", *scriptFile).Msg("failed to load sketch script")
	}

	q := queue.New[dispatcher.Event]()
	for _, ev := range events {
		q.Push(dispatcher.Event{Command: ev.Command, Args: ev.Args, Timestamp: time.Now()})
	}
	log.Info().Int("events", q.Len()).Msg("replaying sketch script")

	q.Drain(func(e dispatcher.Event) {
		if _, err := disp.Dispatch(e); err != nil {
			log.Error().Err(err).Str("command", e.Command).Msg("event failed")
		}
	})

	if exp, ok := backend.(storage.Exportable); ok {
		if path := exp.GetExportedFilePath(); path != "" {
			fmt.Println(path)
		}
	}
}

// loadTrails reads a GeoJSON feature collection into the index.
func loadTrails(ix *index.Index, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return 0, fmt.Errorf("failed to decode feature collection: %w", err)
	}
	return ix.LoadFeatureCollection(fc, viper.GetString("snap.layer"))
}

// loadScript reads the replay script.
func loadScript(path string) ([]scriptEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var events []scriptEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("failed to decode script: %w", err)
	}
	return events, nil
}
