package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	assert.Equal(t, 60, cfg.Alerts.VisaExpiryDays)
	assert.Equal(t, 30, cfg.Alerts.CertificateExpiryDays)
	assert.Equal(t, 90, cfg.Alerts.HealthCheckDays)
	assert.Equal(t, 3, cfg.Alerts.InterviewMonths)
	assert.Equal(t, 3, cfg.Alerts.NewTraineeMonths)
	assert.Equal(t, 90, cfg.Alerts.EvaluationWindowDays)
	assert.Equal(t, 10, cfg.Alerts.RecentActivitiesLimit)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
jwt:
  secret: from-file
alerts:
  visa_expiry_days: 45
  certificate_expiry_days: 20
jobs:
  alert_scan_cron: "@every 1h"
`)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("ALERT_VISA_EXPIRY_DAYS", "30")
	t.Setenv("JOBS_ENABLED", "true")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 30, cfg.Alerts.VisaExpiryDays)
	assert.Equal(t, 20, cfg.Alerts.CertificateExpiryDays)
	assert.True(t, cfg.Jobs.Enabled)
	assert.Equal(t, "@every 1h", cfg.Jobs.AlertScanCron)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing secret",
			env:     map[string]string{"JWT_SECRET": ""},
			wantErr: "JWT secret is required",
		},
		{
			name:    "non positive threshold",
			env:     map[string]string{"JWT_SECRET": "s", "ALERT_HEALTH_CHECK_DAYS": "0"},
			wantErr: "alerts.health_check_days must be positive",
		},
		{
			name:    "malformed boolean",
			env:     map[string]string{"JWT_SECRET": "s", "JOBS_ENABLED": "maybe"},
			wantErr: "JOBS_ENABLED",
		},
		{
			name:    "unknown timezone",
			env:     map[string]string{"JWT_SECRET": "s", "ALERT_TIMEZONE": "Nowhere/Land"},
			wantErr: "invalid alerts timezone",
		},
		{
			name:    "jobs without schedule",
			file:    "jobs:\n  enabled: true\n  alert_scan_cron: \"\"\n",
			env:     map[string]string{"JWT_SECRET": "s", "REDIS_ADDR": "redis:6379"},
			wantErr: "alert scan schedule is required",
		},
		{
			name:    "bad yaml",
			file:    "alerts: [",
			env:     map[string]string{"JWT_SECRET": "s"},
			wantErr: "failed to parse config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := filepath.Join(t.TempDir(), "missing.yaml")
			if tt.file != "" {
				path = writeConfig(t, tt.file)
			}

			_, err := LoadConfig(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestProcessStructFields_Duration(t *testing.T) {
	var target struct {
		Nested struct {
			Timeout time.Duration `env:"TEST_CONFIG_TIMEOUT"`
			Ratio   float64       `env:"TEST_CONFIG_RATIO"`
		}
	}
	t.Setenv("TEST_CONFIG_TIMEOUT", "90s")
	t.Setenv("TEST_CONFIG_RATIO", "0.5")

	require.NoError(t, processStructFields(&target))
	assert.Equal(t, 90*time.Second, target.Nested.Timeout)
	assert.InDelta(t, 0.5, target.Nested.Ratio, 1e-9)
}

func TestConfigHelpers(t *testing.T) {
	cfg := &Config{}
	cfg.Database.User = "app"
	cfg.Database.Password = "pw"
	cfg.Database.Host = "db"
	cfg.Database.Port = "5432"
	cfg.Database.DBName = "traineehub"

	assert.Equal(t, "postgres://app:pw@db:5432/traineehub?sslmode=disable", cfg.GetPostgresConnectionString())

	cfg.Alerts.Timezone = "Nowhere/Land"
	assert.Equal(t, time.UTC, cfg.Location())
}
