package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("LISTING_RESERVED_FOLDER", "")
	t.Setenv("S3_PRESIGN_TTL", "")

	cfg := LoadConfig()

	assert.Equal(t, "DEV", cfg.Env)
	assert.Equal(t, "objects", cfg.ListingConfig.ReservedFolder)
	assert.Equal(t, "detected_matches", cfg.ListingConfig.DetectedFolder)
	assert.Equal(t, time.Hour, cfg.S3Config.PresignTTL)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("ENV", "PROD")
	t.Setenv("S3_PRESIGN_TTL", "15m")
	t.Setenv("BREAKER_CONSECUTIVE_FAILURES", "3")
	t.Setenv("TRACING", "true")
	t.Setenv("ADMIN_USER_IDS", " admin-1, ,admin-2 ")
	t.Setenv("BROWSE_SESSION_IDLE_TTL", "5m")

	cfg := LoadConfig()

	assert.True(t, cfg.IsProd())
	assert.True(t, cfg.Tracing)
	assert.Equal(t, 15*time.Minute, cfg.S3Config.PresignTTL)
	assert.Equal(t, uint32(3), cfg.BreakerConfig.ConsecutiveFailures)
	assert.Equal(t, []string{"admin-1", "admin-2"}, cfg.AdminConfig.UserIDs)
	assert.Equal(t, 5*time.Minute, cfg.BrowseConfig.SessionIdleTTL)
	assert.Equal(t, time.Minute, cfg.BrowseConfig.SweepInterval)
}

func TestLoadConfig_BadValuesFallBack(t *testing.T) {
	t.Setenv("S3_PRESIGN_TTL", "soon")
	t.Setenv("REDIS_DB", "one")

	cfg := LoadConfig()

	assert.Equal(t, time.Hour, cfg.S3Config.PresignTTL)
	assert.Equal(t, 0, cfg.RedisConfig.DB)
}

func TestValidateAllSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("S3_BUCKET", "")

	cfg := LoadConfig()
	err := cfg.ValidateAllSecrets()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET_KEY")
	assert.Contains(t, err.Error(), "S3_BUCKET")

	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("S3_BUCKET", "findit")
	cfg = LoadConfig()
	assert.NoError(t, cfg.ValidateAllSecrets())

	cfg.ListingConfig.RootPrefix = "users/"
	assert.Error(t, cfg.ValidateAllSecrets())
}
