package deps

import (
	"context"
	"testing"

	"github.com/database-playground/sqlquest/internal/config"
	"github.com/database-playground/sqlquest/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func TestConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SERVER_URI", "https://quest.example.com")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Config()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "https://quest.example.com/api", cfg.APIBaseURL())
}

func TestConfig_Invalid(t *testing.T) {
	t.Setenv("SESSION_STORE", "disk")

	_, err := Config()
	assert.Error(t, err)
}

func TestSessionStorage_Memory(t *testing.T) {
	lifecycle := fxtest.NewLifecycle(t)

	storage, err := SessionStorage(lifecycle, config.WebConfig{
		Session: config.SessionConfig{Store: config.SessionStoreMemory},
	})
	require.NoError(t, err)

	_, ok := storage.(*session.MemoryStorage)
	assert.True(t, ok)
}

func TestPostHogClient_Disabled(t *testing.T) {
	lifecycle := fxtest.NewLifecycle(t)

	client, err := PostHogClient(lifecycle, config.WebConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)

	assert.NotNil(t, EventService(client))
}

func TestOTelSDK(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		shutdown, err := OTelSDK(context.Background(), config.OTelConfig{Exporter: config.OTelExporterNone}, "test")
		require.NoError(t, err)
		assert.NoError(t, shutdown(context.Background()))
	})

	t.Run("stdout", func(t *testing.T) {
		shutdown, err := OTelSDK(context.Background(), config.OTelConfig{
			Exporter: config.OTelExporterStdout,
			Protocol: config.OTelProtocolHTTP,
		}, "test")
		require.NoError(t, err)
		assert.NoError(t, shutdown(context.Background()))
	})
}
