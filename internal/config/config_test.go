package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	cfg, err := Load("testdata/nonexistent.env")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "growt", cfg.MongoDB.DBName)
	assert.Equal(t, "0 7 1 * *", cfg.Reporting.CronSchedule)
	assert.Equal(t, "Asia/Jakarta", cfg.Reporting.Timezone)
	assert.Equal(t, 10.0, cfg.Reporting.AlertDropPoints)
	assert.False(t, cfg.SheetsEnabled())
	assert.False(t, cfg.NotifyEnabled())
}

func TestLoad_InvalidAlertThreshold(t *testing.T) {
	t.Setenv("HEALTH_ALERT_DROP_POINTS", "lots")

	_, err := Load("testdata/nonexistent.env")
	require.Error(t, err)
}

func TestValidate_HalfConfiguredSheets(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "/etc/growt/creds.json")

	_, err := Load("testdata/nonexistent.env")
	require.Error(t, err)
}

func TestLoad_NotifyEnabled(t *testing.T) {
	t.Setenv("ALERT_WEBHOOK_URL", "https://hooks.example.com/growt")

	cfg, err := Load("testdata/nonexistent.env")
	require.NoError(t, err)
	assert.True(t, cfg.NotifyEnabled())
}
