// Package deps contains the dependencies for the web front end and the
// development API.
package deps

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/database-playground/sqlquest/internal/apiclient"
	"github.com/database-playground/sqlquest/internal/config"
	"github.com/database-playground/sqlquest/internal/events"
	"github.com/database-playground/sqlquest/internal/session"
	"github.com/joho/godotenv"
	"github.com/posthog/posthog-go"
	"github.com/redis/rueidis"
	"github.com/redis/rueidis/rueidisotel"
	"go.uber.org/fx"
)

// loadDotenv loads the .env file into the environment, if there is one.
func loadDotenv() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("error loading .env file", "error", err)
	}
}

// Config loads the environment variables from the .env file and returns
// the web front end configuration.
func Config() (config.WebConfig, error) {
	loadDotenv()

	cfg, err := config.LoadWeb()
	if err != nil {
		slog.Error("error creating config", "error", err)
		return config.WebConfig{}, err
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("error validating config", "error", err)
		return config.WebConfig{}, err
	}

	return cfg, nil
}

// DevAPIConfig loads the environment variables from the .env file and
// returns the development API configuration.
func DevAPIConfig() (config.DevAPIConfig, error) {
	loadDotenv()

	cfg, err := config.LoadDevAPI()
	if err != nil {
		slog.Error("error creating config", "error", err)
		return config.DevAPIConfig{}, err
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("error validating config", "error", err)
		return config.DevAPIConfig{}, err
	}

	return cfg, nil
}

// CLIConfig loads the environment variables from the .env file and
// returns the terminal client configuration.
func CLIConfig() (config.CLIConfig, error) {
	loadDotenv()

	cfg, err := config.LoadCLI()
	if err != nil {
		return config.CLIConfig{}, err
	}

	if err := cfg.Validate(); err != nil {
		return config.CLIConfig{}, err
	}

	return cfg, nil
}

// RedisClient creates a traced rueidis.Client.
func RedisClient(cfg config.RedisConfig) (rueidis.Client, error) {
	client, err := rueidisotel.NewClient(rueidis.ClientOption{
		InitAddress: []string{
			fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		},
		Username: cfg.Username,
		Password: cfg.Password,
	})
	if err != nil {
		slog.Error("error creating redis client", "error", err)
		return nil, err
	}

	return client, nil
}

// SessionStorage creates the session.Storage selected by SESSION_STORE.
func SessionStorage(lifecycle fx.Lifecycle, cfg config.WebConfig) (session.Storage, error) {
	if cfg.Session.Store != config.SessionStoreRedis {
		return session.NewMemoryStorage(cfg.Session.TTL), nil
	}

	client, err := RedisClient(cfg.Redis)
	if err != nil {
		return nil, err
	}

	lifecycle.Append(fx.StopHook(client.Close))

	return session.NewRedisStorage(client, cfg.Session.TTL), nil
}

// APIClient creates the client of the lesson and query-execution API.
func APIClient(cfg config.WebConfig) *apiclient.Client {
	api := cfg.ResolvedAPI()
	slog.Info("using lesson API", "base_url", api.BaseURL)

	return apiclient.New(api)
}

// PostHogClient creates a posthog.Client, or nil when analytics are disabled.
func PostHogClient(lifecycle fx.Lifecycle, cfg config.WebConfig) (posthog.Client, error) {
	if !cfg.PostHog.Enabled() {
		slog.Info("PostHog analytics disabled")
		return nil, nil
	}

	client, err := posthog.NewWithConfig(cfg.PostHog.APIKey, posthog.Config{
		Endpoint: cfg.PostHog.Host,
	})
	if err != nil {
		slog.Error("error creating PostHog client", "error", err)
		return nil, err
	}

	lifecycle.Append(fx.StopHook(func(ctx context.Context) error {
		return client.Close()
	}))

	return client, nil
}

// EventService creates the analytics event service.
func EventService(client posthog.Client) *events.EventService {
	if client == nil {
		return events.NewEventService(nil)
	}

	return events.NewEventService(client)
}

var FxCommonModule = fx.Module("common",
	fx.Provide(Config),
	fx.Provide(SessionStorage),
	fx.Provide(APIClient),
	fx.Provide(PostHogClient),
	fx.Provide(EventService),
)
