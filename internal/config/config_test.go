package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("MAX_UPLOAD_MB", "5")
	t.Setenv("PRESIGN_EXPIRY_SEC", "60")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, 5*1024*1024, cfg.Upload.BodyLimit())
	assert.Equal(t, time.Minute, cfg.Upload.PresignExpiry())
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MINIO_BUCKET", "")
	t.Setenv("MAX_UPLOAD_MB", "")
	t.Setenv("PRESIGN_EXPIRY_SEC", "")

	cfg := Load()

	assert.Equal(t, "floorplan", cfg.MinIO.Bucket)
	assert.Equal(t, 20, cfg.Upload.MaxUploadMB)
	assert.Equal(t, 15*time.Minute, cfg.Upload.PresignExpiry())
}

func TestLocation(t *testing.T) {
	cfg := &AppConfig{TimeZone: "UTC"}
	assert.Equal(t, "UTC", cfg.Location().String())

	cfg.TimeZone = "Not/AZone"
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
