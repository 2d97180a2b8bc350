package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"
)

type Config struct {
	HTTPPort   string
	LogLevel   slog.Level
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	// SessionSlot names the row holding this device's session.
	SessionSlot string

	BackendBaseURL    string
	OsrmBaseURL       string
	NominatimBaseURL  string
	PhotonBaseURL     string
	MapStyleURL       string
	MapTilerKey       string
	HTTPClientTimeout time.Duration
	RetryMaxElapsed   time.Duration

	TrackingInterval time.Duration
	PositionMaxAge   time.Duration
	PositionTimeout  time.Duration

	RedisAddr          string
	GeocodeCacheTTL    time.Duration
	GeocodeCountryName string
	GeocodeCountryCode string
	KafkaBrokers       []string
	KafkaOrderTopic    string
	KafkaLocationTopic string
}

// NewConfig reads the configuration through getenv. Empty variables take
// their defaults.
func NewConfig(getenv func(string) string) (Config, error) {
	env := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	var errs []error
	duration := func(key, def string) time.Duration {
		d, err := time.ParseDuration(env(key, def))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
		return d
	}

	cfg := Config{
		HTTPPort:    env("HTTP_PORT", "8080"),
		DBHost:      env("DB_HOST", "localhost"),
		DBPort:      env("DB_PORT", "5432"),
		DBUser:      env("DB_USER", "postgres"),
		DBPassword:  env("DB_PASSWORD", ""),
		DBName:      env("DB_NAME", "courier_tracker"),
		DBSslMode:   env("DB_SSLMODE", "disable"),
		SessionSlot: env("SESSION_SLOT", "default"),

		BackendBaseURL:    env("BACKEND_BASE_URL", "http://localhost:8000"),
		OsrmBaseURL:       env("OSRM_BASE_URL", "https://router.project-osrm.org"),
		NominatimBaseURL:  env("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		PhotonBaseURL:     env("PHOTON_BASE_URL", "https://photon.komoot.io"),
		MapStyleURL:       env("MAP_STYLE_URL", "https://api.maptiler.com/maps/streets-v2/style.json"),
		MapTilerKey:       env("MAPTILER_KEY", ""),
		HTTPClientTimeout: duration("HTTP_CLIENT_TIMEOUT", "10s"),
		RetryMaxElapsed:   duration("RETRY_MAX_ELAPSED", "3s"),

		TrackingInterval: duration("TRACKING_INTERVAL", "10s"),
		PositionMaxAge:   duration("POSITION_MAX_AGE", "5s"),
		PositionTimeout:  duration("POSITION_TIMEOUT", "10s"),

		RedisAddr:          env("REDIS_ADDR", ""),
		GeocodeCacheTTL:    duration("GEOCODE_CACHE_TTL", "24h"),
		GeocodeCountryName: env("GEOCODE_COUNTRY_NAME", "Panamá"),
		GeocodeCountryCode: env("GEOCODE_COUNTRY_CODE", "PA"),
		KafkaBrokers:       splitList(env("KAFKA_BROKERS", "")),
		KafkaOrderTopic:    env("KAFKA_ORDER_TOPIC", "courier.orders"),
		KafkaLocationTopic: env("KAFKA_LOCATION_TOPIC", "courier.locations"),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(env("LOG_LEVEL", "info"))); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	if cfg.TrackingInterval < time.Second {
		errs = append(errs, fmt.Errorf("TRACKING_INTERVAL: %s is shorter than one second", cfg.TrackingInterval))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN is the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// StyleURL is the map style handed to renderers, keyed when a MapTiler key
// is configured.
func (c Config) StyleURL() string {
	if c.MapStyleURL == "" || c.MapTilerKey == "" {
		return c.MapStyleURL
	}
	sep := "?"
	if strings.Contains(c.MapStyleURL, "?") {
		sep = "&"
	}
	return c.MapStyleURL + sep + "key=" + url.QueryEscape(c.MapTilerKey)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
