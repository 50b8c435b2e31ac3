package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "9000", cfg.AppPort)
	assert.Equal(t, 5432, cfg.DBPort)
	assert.Equal(t, "pickup_audit", cfg.AuditTopic)
	assert.Equal(t, 2*time.Second, cfg.OutboxPollInterval)
	assert.False(t, cfg.LegacyDriverAvailability)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("LEGACY_DRIVER_AVAILABILITY", "true")
	t.Setenv("OUTBOX_POLL_INTERVAL", "500ms")

	cfg := Load()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, 5433, cfg.DBPort)
	assert.True(t, cfg.LegacyDriverAvailability)
	assert.Equal(t, 500*time.Millisecond, cfg.OutboxPollInterval)
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("LEGACY_DRIVER_AVAILABILITY", "maybe")

	cfg := Load()

	assert.Equal(t, 5432, cfg.DBPort)
	assert.False(t, cfg.LegacyDriverAvailability)
}
