// Package config loads runtime configuration for the voicenotes CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. VOICENOTES_CLIENT_* environment variables.
//  4. Command-line flags.
//
// Supported flags
//
//	-a string   base URL of the voicenotes API
//	-w int      request timeout (seconds)
//	-r int      recording limit (seconds)
//	-k int      audio chunk size (bytes)
//	-p int      playback interval between chunks (milliseconds)
//	-x string   export directory
//	-v string   log level
//
// The JSON loader uses timex.Duration for durations, so values can be
// strings like "10s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:4000",
//	  "request_timeout": "10s",
//	  "recording_limit": "1m",
//	  "chunk_interval": "500ms"
//	}
package config

import (
	"time"

	"github.com/dmitrijs2005/voicenotes/internal/recorder"
)

// DefaultChunkInterval paces file playback at one default-sized chunk per
// second, roughly 128 kbit/s, so RecordingLimit bounds recorded audio time.
const DefaultChunkInterval = time.Second

// Config holds runtime settings for the CLI.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	RecordingLimit time.Duration
	ChunkSize      int
	ChunkInterval  time.Duration
	ExportDir      string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:4000"
	c.RequestTimeout = 10 * time.Second
	c.RecordingLimit = recorder.DefaultLimit
	c.ChunkSize = recorder.DefaultChunkSize
	c.ChunkInterval = DefaultChunkInterval
	c.ExportDir = "notes-export"
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config from defaults, then overlays JSON, the
// environment and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	if err := parseEnv(cfg); err != nil {
		panic(err)
	}
	parseFlags(cfg)
	return cfg
}
