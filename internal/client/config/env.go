package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/voicenotes/internal/flagx"
)

func parseEnv(cfg *Config) error {
	flagx.EnvString("VOICENOTES_CLIENT_SERVER_URL", &cfg.ServerURL)
	if err := flagx.EnvDuration("VOICENOTES_CLIENT_TIMEOUT", time.Second, &cfg.RequestTimeout); err != nil {
		return fmt.Errorf("VOICENOTES_CLIENT_TIMEOUT: %w", err)
	}
	if err := flagx.EnvDuration("VOICENOTES_CLIENT_RECORDING_LIMIT", time.Second, &cfg.RecordingLimit); err != nil {
		return fmt.Errorf("VOICENOTES_CLIENT_RECORDING_LIMIT: %w", err)
	}
	if v := os.Getenv("VOICENOTES_CLIENT_CHUNK_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("VOICENOTES_CLIENT_CHUNK_SIZE: %w", err)
		}
		cfg.ChunkSize = n
	}
	if err := flagx.EnvDuration("VOICENOTES_CLIENT_CHUNK_INTERVAL", time.Millisecond, &cfg.ChunkInterval); err != nil {
		return fmt.Errorf("VOICENOTES_CLIENT_CHUNK_INTERVAL: %w", err)
	}
	flagx.EnvString("VOICENOTES_CLIENT_EXPORT_DIR", &cfg.ExportDir)
	flagx.EnvString("VOICENOTES_CLIENT_LOG_LEVEL", &cfg.LogLevel)
	return nil
}
