package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/voicenotes/internal/flagx"
)

// parseFlags populates Config fields from command-line flags. Arguments not
// listed here are filtered out with flagx.FilterArgs.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-w", "-r", "-k", "-p", "-x", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the voicenotes API")
	requestTimeout := fs.Int("w", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	recordingLimit := fs.Int("r", int(cfg.RecordingLimit.Seconds()), "recording limit (in seconds)")
	fs.IntVar(&cfg.ChunkSize, "k", cfg.ChunkSize, "audio chunk size (in bytes)")
	chunkInterval := fs.Int("p", int(cfg.ChunkInterval.Milliseconds()), "playback interval between chunks (in milliseconds)")
	fs.StringVar(&cfg.ExportDir, "x", cfg.ExportDir, "export directory")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "w":
			cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		case "r":
			cfg.RecordingLimit = time.Duration(*recordingLimit) * time.Second
		case "p":
			cfg.ChunkInterval = time.Duration(*chunkInterval) * time.Millisecond
		}
	})
}
