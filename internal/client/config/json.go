package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/voicenotes/internal/flagx"
	"github.com/dmitrijs2005/voicenotes/internal/timex"
)

// JsonConfig is the on-disk shape of the CLI configuration. Absent keys keep
// their current values.
type JsonConfig struct {
	ServerURL      *string         `json:"server_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	RecordingLimit *timex.Duration `json:"recording_limit"`
	ChunkSize      *int            `json:"chunk_size"`
	ChunkInterval  *timex.Duration `json:"chunk_interval"`
	ExportDir      *string         `json:"export_dir"`
	LogLevel       *string         `json:"log_level"`
}

// parseJson overlays values from the file named by -c/-config. It panics on
// read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != nil {
		cfg.ServerURL = *jc.ServerURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RecordingLimit != nil {
		cfg.RecordingLimit = jc.RecordingLimit.Duration
	}
	if jc.ChunkSize != nil {
		cfg.ChunkSize = *jc.ChunkSize
	}
	if jc.ChunkInterval != nil {
		cfg.ChunkInterval = jc.ChunkInterval.Duration
	}
	if jc.ExportDir != nil {
		cfg.ExportDir = *jc.ExportDir
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
