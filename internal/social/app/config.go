package app

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/hellosocial/internal/social/domain"
	"github.com/aussiebroadwan/hellosocial/internal/social/session"
)

const (
	SessionBackendSQL   = "sql"
	SessionBackendRedis = "redis"
)

type Config struct {
	BaseURL       string // Public URL of the site, used for callbacks and the share message (default: http://localhost:8080)
	DatabaseFile  string // Path to the SQLite database file (default: hellosocial.db)
	MasterKeyPath string // Optional: file holding the master key for credential encryption
	StateSecret   string // Optional: HMAC secret for login state; derived from the master key when empty

	SessionBackend string        // Session store, sql or redis (default: sql)
	SessionTTL     time.Duration // Session lifetime (default: 14 days)
	RedisAddr      string        // Redis address when SessionBackend is redis (default: localhost:6379)
	RedisPassword  string        // Optional
	RedisDB        int           // Redis database number (default: 0)

	TwitterConsumerKey    string
	TwitterConsumerSecret string
	FacebookAppID         string
	FacebookAppSecret     string
	GoogleClientID        string
	GoogleClientSecret    string

	DefaultFavoriteColor string // Favorite given to new identities (default: Blue)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired session cleanup interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		BaseURL:       strings.TrimRight(getEnvOrDefault("BASE_URL", "http://localhost:8080"), "/") + "/",
		DatabaseFile:  getEnvOrDefault("DATABASE_FILE", "hellosocial.db"),
		MasterKeyPath: os.Getenv("MASTER_KEY_PATH"),
		StateSecret:   os.Getenv("STATE_SECRET"),

		SessionBackend: getEnvOrDefault("SESSION_BACKEND", SessionBackendSQL),
		SessionTTL:     getEnvDurationOrDefault("SESSION_TTL", session.DefaultTTL),
		RedisAddr:      getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getEnvIntOrDefault("REDIS_DB", 0),

		TwitterConsumerKey:    os.Getenv("TWITTER_CONSUMER_KEY"),
		TwitterConsumerSecret: os.Getenv("TWITTER_CONSUMER_SECRET"),
		FacebookAppID:         os.Getenv("FACEBOOK_APP_ID"),
		FacebookAppSecret:     os.Getenv("FACEBOOK_APP_SECRET"),
		GoogleClientID:        os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:    os.Getenv("GOOGLE_CLIENT_SECRET"),

		DefaultFavoriteColor: getEnvOrDefault("DEFAULT_FAVORITE_COLOR", domain.DefaultFavoriteColor),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("BASE_URL must be an absolute http(s) URL, got %q", c.BaseURL)
	}

	switch c.SessionBackend {
	case SessionBackendSQL, SessionBackendRedis:
	default:
		return fmt.Errorf("SESSION_BACKEND must be %q or %q, got %q", SessionBackendSQL, SessionBackendRedis, c.SessionBackend)
	}

	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	return nil
}

// SecureCookies is true when the site is served over https.
func (c Config) SecureCookies() bool {
	return strings.HasPrefix(c.BaseURL, "https://")
}

// CallbackURL is where provider name sends the visitor back to.
func (c Config) CallbackURL(name domain.ProviderName) string {
	return c.BaseURL + "auth/" + string(name) + "/callback"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
