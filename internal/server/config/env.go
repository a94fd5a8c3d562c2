package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/voicenotes/internal/flagx"
)

// parseEnv overlays VOICENOTES_* environment variables. cmd/server loads a
// .env file into the environment beforehand.
func parseEnv(config *Config) error {
	flagx.EnvString("VOICENOTES_HTTP_ADDR", &config.HTTPAddr)
	flagx.EnvString("VOICENOTES_DATABASE_DSN", &config.DatabaseDSN)
	flagx.EnvString("VOICENOTES_SECRET_KEY", &config.SecretKey)
	if err := flagx.EnvDuration("VOICENOTES_TOKEN_TTL", time.Minute, &config.AccessTokenValidityDuration); err != nil {
		return fmt.Errorf("VOICENOTES_TOKEN_TTL: %w", err)
	}
	flagx.EnvString("VOICENOTES_S3_USER", &config.S3RootUser)
	flagx.EnvString("VOICENOTES_S3_PASSWORD", &config.S3RootPassword)
	flagx.EnvString("VOICENOTES_S3_BUCKET", &config.S3Bucket)
	flagx.EnvString("VOICENOTES_S3_REGION", &config.S3Region)
	flagx.EnvString("VOICENOTES_S3_ENDPOINT", &config.S3BaseEndpoint)
	flagx.EnvString("VOICENOTES_S3_PUBLIC_URL", &config.S3PublicURL)
	flagx.EnvString("VOICENOTES_UPLOAD_FOLDER", &config.UploadFolder)
	flagx.EnvString("VOICENOTES_BODY_LIMIT", &config.BodyLimit)
	if v := os.Getenv("VOICENOTES_ALLOWED_ORIGINS"); v != "" {
		config.AllowedOrigins = flagx.SplitList(v)
	}
	flagx.EnvString("VOICENOTES_LOG_LEVEL", &config.LogLevel)
	flagx.EnvString("VOICENOTES_LOG_FORMAT", &config.LogFormat)
	return nil
}
