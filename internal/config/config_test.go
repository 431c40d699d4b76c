package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "Europe/Madrid", cfg.Scheduling.TimeZone)

	catalog, err := cfg.BuildCatalog()
	require.NoError(t, err)
	assert.Len(t, catalog.Services(), 11)
	assert.Equal(t, []string{"david", "marta"}, catalog.EmployeeIDs())

	s, ok := catalog.Service("full_package")
	require.True(t, ok)
	assert.Equal(t, 55, s.DurationMinutes)

	calendar, err := cfg.ShiftCalendar()
	require.NoError(t, err)
	assert.Len(t, calendar.Windows(), 2)
	assert.False(t, cfg.GoogleCalendar.Enabled())
	assert.False(t, cfg.Events.Enabled())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
[server]
http_port = 9090

[scheduling]
time_zone = "Europe/Lisbon"
slot_granularity_minutes = 10
max_create_attempts = 5

[[scheduling.shifts]]
start = "10:00"
end = "18:00"

[[catalog.services]]
id = "cut"
name = "Cut"
duration_minutes = 20
price = 15.5

[[catalog.employees]]
id = "ana"
name = "Ana"

[rate_limit]
trusted_proxies = ["10.0.0.0/8", "192.168.1.1"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Scheduling.SlotGranularityMinutes)
	require.Len(t, cfg.Scheduling.Shifts, 1)
	assert.Equal(t, "10:00", cfg.Scheduling.Shifts[0].Start.String())

	catalog, err := cfg.BuildCatalog()
	require.NoError(t, err)
	assert.Len(t, catalog.Services(), 1)
	assert.Equal(t, []string{"ana"}, catalog.EmployeeIDs())

	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.1"}, cfg.RateLimit.TrustedProxies)
	assert.Equal(t, 30, cfg.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("HTTP_PORT", "7000")
	t.Setenv("GOOGLE_CAL_ID", "shop@group.calendar.google.com")
	t.Setenv("GOOGLE_KEY_JSON", `{"type":"service_account"}`)
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Contains(t, cfg.Database.DSN(), "password=secret")
	assert.Equal(t, 7000, cfg.Server.HTTPPort)
	assert.True(t, cfg.GoogleCalendar.Enabled())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.Brokers)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoad_InvalidEnvNumber(t *testing.T) {
	t.Setenv("HTTP_PORT", "eighty")

	_, err := Load("")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeFile(t, "[server\nhttp_port = ")

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrLoadConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"port", func(c *Config) { c.Server.HTTPPort = 0 }},
		{"zone", func(c *Config) { c.Scheduling.TimeZone = "Mars/Olympus" }},
		{"granularity", func(c *Config) { c.Scheduling.SlotGranularityMinutes = 0 }},
		{"attempts", func(c *Config) { c.Scheduling.MaxCreateAttempts = 0 }},
		{"empty catalog", func(c *Config) { c.Catalog.Services = nil }},
		{"bad shift", func(c *Config) { c.Scheduling.Shifts = []ShiftConfig{{Start: "13:00", End: "09:00"}} }},
		{"rate limit", func(c *Config) { c.RateLimit.Requests = 0 }},
		{"rate limit burst", func(c *Config) { c.RateLimit.Burst = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	assert.NoError(t, Default().Validate())
}
