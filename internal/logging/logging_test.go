package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "level %q", tt.in)
	}
}

func TestSetup_ConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(Options{Level: "debug", ConsoleWriter: &buf})

	log.Info().Str("trail", "ridge").Msg("snapped point")

	out := buf.String()
	assert.Contains(t, out, "snapped point")
	assert.Contains(t, out, "ridge")
}

func TestSetup_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := Setup(Options{Level: "warn", ConsoleWriter: &buf})

	log.Debug().Msg("hidden")
	log.Warn().Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
}

func TestSetup_FileSink(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "trailsketch.log")
	log := Setup(Options{Level: "info", ConsoleWriter: &buf, FilePath: path})

	log.Info().Msg("written to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestLogFilePath(t *testing.T) {
	sessionStart := time.Date(2026, 8, 25, 9, 30, 15, 0, time.UTC)

	tests := []struct {
		name    string
		logsDir string
		appName string
		want    string
	}{
		{
			name:    "basic path",
			logsDir: "logs",
			appName: "trailsketch",
			want:    filepath.Join("logs", "trailsketch.20260825_093015.log"),
		},
		{
			name:    "relative path with dot",
			logsDir: "./logs",
			appName: "trailsketch",
			want:    filepath.Join(".", "logs", "trailsketch.20260825_093015.log"),
		},
		{
			name:    "absolute path",
			logsDir: filepath.Join("/var", "log", "trailsketch"),
			appName: "trailsketch",
			want:    filepath.Join("/var", "log", "trailsketch", "trailsketch.20260825_093015.log"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LogFilePath(tt.logsDir, tt.appName, sessionStart)
			assert.Equal(t, tt.want, got)
		})
	}
}
