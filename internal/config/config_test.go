package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWeb_Defaults(t *testing.T) {
	cfg, err := LoadWeb()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, EnvironmentProduction, cfg.Environment)
	assert.Equal(t, SessionStoreMemory, cfg.Session.Store)
	assert.Equal(t, 8*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 15, cfg.DevAPI.MaxStatements)
	assert.NoError(t, cfg.Validate())
}

func TestLoadWeb_Env(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := LoadWeb()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.NoError(t, cfg.Validate())
}

func TestWebConfig_Validate(t *testing.T) {
	cfg, err := LoadWeb()
	require.NoError(t, err)

	cfg.Environment = "staging"
	cfg.Session.Store = SessionStoreRedis
	cfg.OTel.Exporter = "jaeger"

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENVIRONMENT")
	assert.Contains(t, err.Error(), "REDIS_HOST is required")
	assert.Contains(t, err.Error(), "OTEL_EXPORTER")
}

func TestWebConfig_APIBaseURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  WebConfig
		want string
	}{
		{
			name: "explicit base",
			cfg:  WebConfig{API: APIConfig{BaseURL: "https://api.example.com/api/"}, Environment: EnvironmentDevelopment},
			want: "https://api.example.com/api",
		},
		{
			name: "development",
			cfg:  WebConfig{Environment: EnvironmentDevelopment, ServerURI: "http://localhost:8080"},
			want: DevelopmentAPIBaseURL,
		},
		{
			name: "development with embedded api",
			cfg:  WebConfig{Environment: EnvironmentDevelopment, ServerURI: "http://localhost:8080", EmbedDevAPI: true},
			want: "http://localhost:8080/api",
		},
		{
			name: "production resolves relative path",
			cfg:  WebConfig{Environment: EnvironmentProduction, ServerURI: "https://sqlquest.example.com/"},
			want: "https://sqlquest.example.com/api",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.APIBaseURL())
			assert.Equal(t, tt.want, tt.cfg.ResolvedAPI().BaseURL)
		})
	}
}

func TestLoadDevAPI(t *testing.T) {
	t.Setenv("MAX_STATEMENTS", "3")

	cfg, err := LoadDevAPI()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, 3, cfg.MaxStatements)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.NoError(t, cfg.Validate())

	cfg.MaxStatements = 0
	assert.Error(t, cfg.Validate())
}

func TestLoadCLI(t *testing.T) {
	cfg, err := LoadCLI()
	require.NoError(t, err)
	assert.Equal(t, DevelopmentAPIBaseURL, cfg.ResolvedAPI().BaseURL)
	assert.NoError(t, cfg.Validate())

	t.Setenv("API_BASE_URL", "https://sqlquest.example.com/api/")
	t.Setenv("API_TIMEOUT", "-1s")

	cfg, err = LoadCLI()
	require.NoError(t, err)
	assert.Equal(t, "https://sqlquest.example.com/api", cfg.ResolvedAPI().BaseURL)
	assert.Error(t, cfg.Validate())
}
