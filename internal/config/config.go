package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// AuthProviderClerk verifies session tokens against Clerk.
	AuthProviderClerk = "clerk"
	// AuthProviderLocal verifies HS256 session tokens signed with SessionSecret.
	AuthProviderLocal = "local"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Env         string
	ServerPort  string
	PublicURL   string
	SwaggerHost string

	DBDriver string
	DBDSN    string

	RedisAddr string
	RedisDB   int
	RedisPass string

	AuthProvider        string
	ClerkSecretKey      string
	ClerkPublishableKey string
	SessionSecret       string

	StrapiURL       string
	StrapiToken     string
	StrapiTimeout   time.Duration
	ProfileTTL      time.Duration
	UserSnapshotTTL time.Duration

	SentryDSN              string
	SentryTracesSampleRate float64

	LogLevel  string
	LogFormat string
	LogOutput string

	RoutesFile         string
	LocaleDetection    bool
	CORSAllowedOrigins []string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	env := getEnv("APP_ENV", "development")
	logFormat := "console"
	if env == "production" {
		logFormat = "json"
	}
	return &Config{
		Env:         env,
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		PublicURL:   getEnv("PUBLIC_URL", "http://localhost:8080"),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),

		DBDriver: getEnv("DB_DRIVER", "sqlite"),
		DBDSN:    getEnv("DB_DSN", "saaskit.db"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		AuthProvider:        getEnv("AUTH_PROVIDER", AuthProviderLocal),
		ClerkSecretKey:      os.Getenv("CLERK_SECRET_KEY"),
		ClerkPublishableKey: os.Getenv("CLERK_PUBLISHABLE_KEY"),
		SessionSecret:       getEnv("SESSION_SECRET", "change-me"),

		StrapiURL:       getEnv("STRAPI_URL", "http://localhost:1337"),
		StrapiToken:     os.Getenv("STRAPI_API_TOKEN"),
		StrapiTimeout:   time.Duration(getEnvInt("STRAPI_TIMEOUT_SECONDS", 10)) * time.Second,
		ProfileTTL:      time.Duration(getEnvInt("PROFILE_CACHE_SECONDS", 300)) * time.Second,
		UserSnapshotTTL: time.Duration(getEnvInt("USER_CACHE_SECONDS", 60)) * time.Second,

		SentryDSN:              os.Getenv("SENTRY_DSN"),
		SentryTracesSampleRate: getEnvFloat("SENTRY_TRACES_SAMPLE_RATE", 0),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", logFormat),
		LogOutput: getEnv("LOG_OUTPUT", "stdout"),

		RoutesFile:         os.Getenv("ROUTES_FILE"),
		LocaleDetection:    getEnvBool("LOCALE_DETECTION", true),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:8080"}),
	}
}

// LoadDotEnv loads variables from .env files outside production. Variables
// already set in the environment win; missing files are ignored.
func LoadDotEnv(files ...string) error {
	if os.Getenv("APP_ENV") == "production" {
		return nil
	}
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.AuthProvider {
	case AuthProviderClerk:
		if c.ClerkSecretKey == "" {
			return errors.New("CLERK_SECRET_KEY is required when AUTH_PROVIDER=clerk")
		}
	case AuthProviderLocal:
		if c.IsProduction() {
			return errors.New("AUTH_PROVIDER=local is not allowed in production")
		}
	default:
		return fmt.Errorf("unknown AUTH_PROVIDER %q", c.AuthProvider)
	}
	switch c.DBDriver {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
