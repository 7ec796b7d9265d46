// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	keyDatabaseURL    = "DATABASE_URL"
	keyRedisURL       = "REDIS_URL"
	keyWeatherAPIKey  = "WEATHER_API_KEY"
	keyGeminiAPIKey   = "GEMINI_API_KEY"
	keyPort           = "PORT"
	keyLogLevel       = "LOG_LEVEL"
	keyWeatherBaseURL = "WEATHER_BASE_URL"
	keyWeatherTimeout = "WEATHER_TIMEOUT"
	keyGeminiModel    = "GEMINI_MODEL"
	keyUploadDir      = "UPLOAD_DIR"
	keyZonesFile      = "ZONES_FILE"
	keyCORSOrigins    = "CORS_ORIGINS"
	keyRateLimit      = "RATE_LIMIT_PER_MINUTE"
)

// Config is built once at startup and passed to constructors.
type Config struct {
	DatabaseURL string
	RedisURL    string
	Port        string
	LogLevel    slog.Level

	WeatherAPIKey  string
	WeatherBaseURL string
	WeatherTimeout time.Duration

	GeminiAPIKey string
	GeminiModel  string

	UploadDir          string
	ZonesFile          string
	CORSOrigins        []string
	RateLimitPerMinute int
}

// MissingError lists required variables that were unset or blank.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	return "required environment variables not set: " + strings.Join(e.Keys, ", ")
}

// Load reads the full server configuration.
func Load() (*Config, error) {
	return load(keyDatabaseURL, keyRedisURL, keyWeatherAPIKey, keyGeminiAPIKey)
}

// LoadPlanning reads only what trip planning needs: the two API keys and
// their tuning knobs. Used by the command-line planner.
func LoadPlanning() (*Config, error) {
	return load(keyWeatherAPIKey, keyGeminiAPIKey)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(keyPort, "8080")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyWeatherBaseURL, "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline")
	v.SetDefault(keyWeatherTimeout, "10s")
	v.SetDefault(keyGeminiModel, "gemini-1.5-flash")
	v.SetDefault(keyUploadDir, "static/uploads")
	v.SetDefault(keyZonesFile, "zones.json")
	v.SetDefault(keyCORSOrigins, "http://localhost:5173")
	v.SetDefault(keyRateLimit, 60)
	v.AutomaticEnv()
	return v
}

func load(required ...string) (*Config, error) {
	v := newViper()

	var missing []string
	for _, k := range required {
		if strings.TrimSpace(v.GetString(k)) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingError{Keys: missing}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString(keyLogLevel))); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", keyLogLevel, err)
	}

	timeout, err := time.ParseDuration(v.GetString(keyWeatherTimeout))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", keyWeatherTimeout, err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %s", keyWeatherTimeout, timeout)
	}

	rate := v.GetInt(keyRateLimit)
	if rate <= 0 {
		return nil, fmt.Errorf("%s must be a positive integer, got %q", keyRateLimit, v.GetString(keyRateLimit))
	}

	return &Config{
		DatabaseURL:        v.GetString(keyDatabaseURL),
		RedisURL:           v.GetString(keyRedisURL),
		Port:               v.GetString(keyPort),
		LogLevel:           level,
		WeatherAPIKey:      v.GetString(keyWeatherAPIKey),
		WeatherBaseURL:     v.GetString(keyWeatherBaseURL),
		WeatherTimeout:     timeout,
		GeminiAPIKey:       v.GetString(keyGeminiAPIKey),
		GeminiModel:        v.GetString(keyGeminiModel),
		UploadDir:          v.GetString(keyUploadDir),
		ZonesFile:          v.GetString(keyZonesFile),
		CORSOrigins:        splitCSV(v.GetString(keyCORSOrigins)),
		RateLimitPerMinute: rate,
	}, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
