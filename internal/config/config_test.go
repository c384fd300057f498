package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "BELUT.IN", cfg.AppName)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 5*time.Minute, cfg.OTPTTL)
	assert.Equal(t, "5-M", cfg.OTPRateLimit)
	assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
	assert.False(t, cfg.SMTPEnabled())
	assert.Equal(t, "127.0.0.1:6379", cfg.GetRedisAddr())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/belut.db")
	t.Setenv("OTP_TTL", "90s")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2525")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "/tmp/belut.db", cfg.SQLitePath)
	assert.Equal(t, 90*time.Second, cfg.OTPTTL)
	assert.True(t, cfg.SMTPEnabled())
	assert.Equal(t, "smtp.example.com:2525", cfg.GetSMTPAddr())
}

func TestLoadFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "belutin.yaml")
	require.NoError(t, os.WriteFile(file, []byte("APP_PORT: \"9090\"\nDB_DATABASE: kolam\n"), 0o600))
	t.Setenv("CONFIG_FILE", file)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "kolam", cfg.DBDatabase)
	assert.Contains(t, cfg.GetDSN(), "@tcp(127.0.0.1:3306)/kolam?")
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")
	_, err := Load()
	assert.ErrorContains(t, err, "DB_DRIVER")
}

func TestValidateRejectsNonPositiveOTPTTL(t *testing.T) {
	cfg := &Config{DBDriver: "sqlite", JWTSecret: "x"}
	assert.Error(t, cfg.Validate())
	cfg.OTPTTL = time.Minute
	assert.NoError(t, cfg.Validate())
}
