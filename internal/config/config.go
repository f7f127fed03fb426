package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/trailsketch/trailsketch/internal/route"
)

// MemoryConfig holds in-memory/GeoJSON storage backend settings
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// StorageConfig selects and configures the storage backend
type StorageConfig struct {
	Type   string       `json:"type" mapstructure:"type"`
	Memory MemoryConfig `json:"memory" mapstructure:"memory"`
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")

	viper.SetDefault("snap.zoom", 15.0)
	viper.SetDefault("snap.radiusPx", 20.0)
	viper.SetDefault("snap.widenedRadiusPx", 50.0)
	viper.SetDefault("snap.gapToleranceM", 20.0)
	viper.SetDefault("snap.dedupEpsilon", 1e-9)
	viper.SetDefault("snap.layer", "trails")

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.memory.outputDir", "./routes")
	viper.SetDefault("storage.memory.compressOutput", false)

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "trailsketch")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "trailsketch-metrics")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetConfigName("trailsketch.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// SessionConfig builds the engine tunables from the loaded configuration.
func SessionConfig() route.Config {
	return route.Config{
		SnapRadiusPx:    viper.GetFloat64("snap.radiusPx"),
		WidenedRadiusPx: viper.GetFloat64("snap.widenedRadiusPx"),
		GapToleranceM:   viper.GetFloat64("snap.gapToleranceM"),
		DedupEpsilon:    viper.GetFloat64("snap.dedupEpsilon"),
		Layer:           viper.GetString("snap.layer"),
	}
}

// Zoom returns the Web-Mercator zoom level pixel space is anchored to.
func Zoom() float64 {
	return viper.GetFloat64("snap.zoom")
}

// GetStorageConfig returns the storage backend selection.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
		},
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
