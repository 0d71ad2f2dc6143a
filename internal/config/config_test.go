package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("AUTH_PROVIDER", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, AuthProviderLocal, cfg.AuthProvider)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.StrapiTimeout)
	assert.True(t, cfg.LocaleDetection)
	assert.False(t, cfg.IsProduction())
	assert.Len(t, cfg.CORSAllowedOrigins, 2)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("LOCALE_DETECTION", "false")
	t.Setenv("SENTRY_TRACES_SAMPLE_RATE", "0.25")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("STRAPI_TIMEOUT_SECONDS", "not-a-number")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.False(t, cfg.LocaleDetection)
	assert.InDelta(t, 0.25, cfg.SentryTracesSampleRate, 0.0001)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.StrapiTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"local development", Config{Env: "development", AuthProvider: AuthProviderLocal, DBDriver: "sqlite"}, ""},
		{"clerk with key", Config{Env: "production", AuthProvider: AuthProviderClerk, ClerkSecretKey: "sk_live_x", DBDriver: "postgres"}, ""},
		{"clerk without key", Config{AuthProvider: AuthProviderClerk, DBDriver: "sqlite"}, "CLERK_SECRET_KEY"},
		{"local in production", Config{Env: "production", AuthProvider: AuthProviderLocal, DBDriver: "mysql"}, "not allowed in production"},
		{"unknown provider", Config{AuthProvider: "auth0", DBDriver: "sqlite"}, "unknown AUTH_PROVIDER"},
		{"unknown driver", Config{AuthProvider: AuthProviderLocal, DBDriver: "oracle"}, "unknown DB_DRIVER"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("STRAPI_URL", "")
	require.NoError(t, os.Unsetenv("STRAPI_URL"))

	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte("STRAPI_URL=http://cms.internal:1337\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("STRAPI_URL") })

	require.NoError(t, LoadDotEnv(file, filepath.Join(t.TempDir(), "missing.env")))
	assert.Equal(t, "http://cms.internal:1337", Load().StrapiURL)
}

func TestLoadDotEnv_SkippedInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "broken")))
}
