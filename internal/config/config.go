package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"

	"playcast/internal/location"
)

// Config holds application configuration. Every key can come from the config
// file or from the environment; environment wins.
type Config struct {
	OpenWeatherAPIKey string
	TelegramBotToken  string
	TelegramChatID    string

	DefaultSport string
	UserID       string

	CityName string
	CityLat  float64
	CityLon  float64
	Timezone string

	DailySchedule string
	Port          int
	DBPath        string
	LogLevel      string
	LogFile       string

	// Location is the parsed Timezone, resolved during Load
	Location *time.Location
}

// Load reads configuration from a .env file, a YAML config file and the
// environment. cfgFile may be empty; the default location is
// $HOME/.playcast/config.yaml.
func Load(cfgFile string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}

		configDir := filepath.Join(home, ".playcast")
		os.MkdirAll(configDir, 0755)

		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetDefault("openweather_api_key", "")
	v.SetDefault("telegram_bot_token", "")
	v.SetDefault("telegram_chat_id", "")
	v.SetDefault("default_sport", "cricket")
	v.SetDefault("user_id", "user123")
	v.SetDefault("city", "Mumbai")
	v.SetDefault("city_lat", 19.0760)
	v.SetDefault("city_lon", 72.8777)
	v.SetDefault("timezone", "Asia/Kolkata")
	v.SetDefault("daily_schedule", "0 6 * * *")
	v.SetDefault("port", 8080)
	v.SetDefault("db_path", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")

	v.AutomaticEnv()
	v.ReadInConfig()

	cfg := &Config{
		OpenWeatherAPIKey: v.GetString("openweather_api_key"),
		TelegramBotToken:  v.GetString("telegram_bot_token"),
		TelegramChatID:    v.GetString("telegram_chat_id"),
		DefaultSport:      v.GetString("default_sport"),
		UserID:            v.GetString("user_id"),
		CityName:          v.GetString("city"),
		CityLat:           v.GetFloat64("city_lat"),
		CityLon:           v.GetFloat64("city_lon"),
		Timezone:          v.GetString("timezone"),
		DailySchedule:     v.GetString("daily_schedule"),
		Port:              v.GetInt("port"),
		DBPath:            v.GetString("db_path"),
		LogLevel:          v.GetString("log_level"),
		LogFile:           v.GetString("log_file"),
	}

	if cfg.DBPath == "" {
		home, _ := os.UserHomeDir()
		cfg.DBPath = filepath.Join(home, ".playcast", "playcast.db")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the values that cannot be defaulted around
func (c *Config) Validate() error {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	c.Location = loc

	if _, err := cron.ParseStandard(c.DailySchedule); err != nil {
		return fmt.Errorf("invalid daily_schedule %q: %w", c.DailySchedule, err)
	}

	return nil
}

// City assembles the configured city for the resolver
func (c *Config) City() location.City {
	return location.City{
		Name:     c.CityName,
		Lat:      c.CityLat,
		Lon:      c.CityLon,
		Timezone: c.Location,
	}
}
