package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// missingFile keeps tests away from any real ~/.playcast/config.yaml
func missingFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "nope.yaml")
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(missingFile(t))
	require.NoError(t, err)

	assert.Equal(t, "cricket", cfg.DefaultSport)
	assert.Equal(t, "user123", cfg.UserID)
	assert.Equal(t, "Mumbai", cfg.CityName)
	assert.InDelta(t, 19.0760, cfg.CityLat, 0.0001)
	assert.InDelta(t, 72.8777, cfg.CityLon, 0.0001)
	assert.Equal(t, "0 6 * * *", cfg.DailySchedule)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.DBPath)
	require.NotNil(t, cfg.Location)
	assert.Equal(t, "Asia/Kolkata", cfg.Location.String())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DEFAULT_SPORT", "football")
	t.Setenv("CITY", "Pune")
	t.Setenv("OPENWEATHER_API_KEY", "test-key-123")
	t.Setenv("TELEGRAM_CHAT_ID", "42")
	t.Setenv("PORT", "9090")

	cfg, err := Load(missingFile(t))
	require.NoError(t, err)

	assert.Equal(t, "football", cfg.DefaultSport)
	assert.Equal(t, "Pune", cfg.CityName)
	assert.Equal(t, "test-key-123", cfg.OpenWeatherAPIKey)
	assert.Equal(t, "42", cfg.TelegramChatID)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := []byte("city: Delhi\ncity_lat: 28.6139\ncity_lon: 77.2090\nport: 9000\n")
	require.NoError(t, os.WriteFile(path, yaml, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Delhi", cfg.CityName)
	assert.InDelta(t, 28.6139, cfg.CityLat, 0.0001)
	assert.Equal(t, 9000, cfg.Port)

	// Untouched keys keep their defaults
	assert.Equal(t, "cricket", cfg.DefaultSport)
	assert.Equal(t, "0 6 * * *", cfg.DailySchedule)
}

func TestLoadRejectsBadTimezone(t *testing.T) {
	t.Setenv("TIMEZONE", "Mars/Olympus")

	_, err := Load(missingFile(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timezone")
}

func TestLoadRejectsBadSchedule(t *testing.T) {
	t.Setenv("DAILY_SCHEDULE", "whenever")

	_, err := Load(missingFile(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "daily_schedule")
}

func TestCity(t *testing.T) {
	cfg, err := Load(missingFile(t))
	require.NoError(t, err)

	city := cfg.City()
	assert.Equal(t, cfg.CityName, city.Name)
	assert.Equal(t, cfg.CityLat, city.Lat)
	assert.Equal(t, cfg.CityLon, city.Lon)
	assert.Same(t, cfg.Location, city.Timezone)
}
