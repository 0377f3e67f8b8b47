package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	JWTSecret      string
	CORSOrigins    []string
	MigrationsPath string

	// Rate pipeline
	BCVURL              string
	BCVAllowInsecureTLS bool
	BCVFetchTimeout     time.Duration
	BCVMaxRedirects     int
	BCVCronSchedule     string
	BCVCronTimezone     string
	BCVRefreshOnStartup bool

	CustomRatesMaxPerUser int
	RateLimit             string // ulule formatted, e.g. "60-M"

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisCacheTTL time.Duration

	KafkaBrokers    []string
	KafkaRatesTopic string

	PosthogAPIKey   string
	PosthogEndpoint string
}

func setDefaults() {
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("CORS_ORIGINS", "")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")

	viper.SetDefault("BCV_URL", "https://www.bcv.org.ve/")
	viper.SetDefault("BCV_ALLOW_INSECURE_TLS", "true")
	viper.SetDefault("BCV_FETCH_TIMEOUT", "60s")
	viper.SetDefault("BCV_MAX_REDIRECTS", 5)
	viper.SetDefault("BCV_CRON_SCHEDULE", "5 16,19 * * *")
	viper.SetDefault("BCV_CRON_TIMEZONE", "America/Caracas")
	viper.SetDefault("BCV_REFRESH_ON_STARTUP", true)

	viper.SetDefault("CUSTOM_RATES_MAX_PER_USER", 10)
	viper.SetDefault("RATE_LIMIT", "60-M")

	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_CACHE_TTL", "10m")

	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_RATES_TOPIC", "bcv.rates.updated")

	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	setDefaults()
	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:    viper.GetString("PGSQL_URL"),
		Port:           viper.GetString("PORT"),
		IsProduction:   viper.GetBool("IS_PRODUCTION"),
		JWTSecret:      viper.GetString("JWT_SECRET"),
		CORSOrigins:    splitList(viper.GetString("CORS_ORIGINS")),
		MigrationsPath: viper.GetString("MIGRATIONS_PATH"),

		BCVURL:              viper.GetString("BCV_URL"),
		BCVAllowInsecureTLS: parseInsecureTLS(viper.GetString("BCV_ALLOW_INSECURE_TLS")),
		BCVMaxRedirects:     viper.GetInt("BCV_MAX_REDIRECTS"),
		BCVCronSchedule:     viper.GetString("BCV_CRON_SCHEDULE"),
		BCVCronTimezone:     viper.GetString("BCV_CRON_TIMEZONE"),
		BCVRefreshOnStartup: viper.GetBool("BCV_REFRESH_ON_STARTUP"),

		CustomRatesMaxPerUser: viper.GetInt("CUSTOM_RATES_MAX_PER_USER"),
		RateLimit:             viper.GetString("RATE_LIMIT"),

		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPassword: viper.GetString("REDIS_PASSWORD"),
		RedisDB:       viper.GetInt("REDIS_DB"),

		KafkaBrokers:    splitList(viper.GetString("KAFKA_BROKERS")),
		KafkaRatesTopic: viper.GetString("KAFKA_RATES_TOPIC"),

		PosthogAPIKey:   viper.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint: viper.GetString("POSTHOG_ENDPOINT"),
	}

	var err error
	if cfg.BCVFetchTimeout, err = parseDuration("BCV_FETCH_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.RedisCacheTTL, err = parseDuration("REDIS_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DatabaseURL == "" {
		slog.Warn("PGSQL_URL environment variable not set")
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, errors.New("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret
		slog.Warn("JWT_SECRET not set, using default insecure key")
	}
	if cfg.CustomRatesMaxPerUser <= 0 {
		slog.Warn("Invalid CUSTOM_RATES_MAX_PER_USER, defaulting to 10", slog.Int("value", cfg.CustomRatesMaxPerUser))
		cfg.CustomRatesMaxPerUser = 10
	}
	if cfg.BCVMaxRedirects < 0 {
		cfg.BCVMaxRedirects = 0
	}
	if cfg.BCVCronTimezone != "" {
		if _, err := time.LoadLocation(cfg.BCVCronTimezone); err != nil {
			return nil, fmt.Errorf("invalid BCV_CRON_TIMEZONE %q: %w", cfg.BCVCronTimezone, err)
		}
	}

	return cfg, nil
}

// parseInsecureTLS allows the insecure fallback unless the value is exactly "false".
func parseInsecureTLS(raw string) bool {
	return strings.ToLower(strings.TrimSpace(raw)) != "false"
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := viper.GetString(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if d <= 0 {
		return fallback, nil
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
