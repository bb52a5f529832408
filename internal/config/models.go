package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
)

const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"

	// DevelopmentAPIBaseURL is where the development API listens by default.
	DevelopmentAPIBaseURL = "http://localhost:5000/api"
)

// WebConfig is the configuration of the web front end.
type WebConfig struct {
	Port           int      `env:"PORT" envDefault:"8080"`
	ServerURI      string   `env:"SERVER_URI" envDefault:"http://localhost:8080"`
	Environment    string   `env:"ENVIRONMENT" envDefault:"production"`
	TrustProxies   []string `env:"TRUST_PROXIES"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS"`

	// EmbedDevAPI mounts the development API under /api of the web server.
	EmbedDevAPI bool `env:"EMBED_DEVAPI"`

	API     APIConfig     `envPrefix:"API_"`
	Session SessionConfig `envPrefix:"SESSION_"`
	Redis   RedisConfig   `envPrefix:"REDIS_"`
	PostHog PostHogConfig `envPrefix:"POSTHOG_"`
	OTel    OTelConfig    `envPrefix:"OTEL_"`
	DevAPI  DevAPIConfig  `envPrefix:"DEVAPI_"`
}

func (c WebConfig) Validate() error {
	var result *multierror.Error

	if c.Port <= 0 {
		result = multierror.Append(result, errors.New("PORT must be positive"))
	}
	if c.ServerURI == "" {
		result = multierror.Append(result, errors.New("SERVER_URI is required"))
	}
	if c.Environment != EnvironmentDevelopment && c.Environment != EnvironmentProduction {
		result = multierror.Append(result, fmt.Errorf("ENVIRONMENT must be %q or %q", EnvironmentDevelopment, EnvironmentProduction))
	}

	if err := c.API.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := c.Session.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if c.Session.Store == SessionStoreRedis {
		if err := c.Redis.Validate(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := c.OTel.Validate(); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

// APIBaseURL returns the base URL of the lesson and execution API.
//
// API_BASE_URL wins when set. Otherwise development deployments talk to
// the development API on localhost, and production deployments resolve
// the relative /api path against SERVER_URI.
func (c WebConfig) APIBaseURL() string {
	if c.API.BaseURL != "" {
		return strings.TrimSuffix(c.API.BaseURL, "/")
	}

	if c.Environment == EnvironmentDevelopment && !c.EmbedDevAPI {
		return DevelopmentAPIBaseURL
	}

	return strings.TrimSuffix(c.ServerURI, "/") + "/api"
}

// ResolvedAPI returns the API configuration with the base URL resolved.
func (c WebConfig) ResolvedAPI() APIConfig {
	api := c.API
	api.BaseURL = c.APIBaseURL()

	return api
}

// APIConfig configures the API client.
type APIConfig struct {
	BaseURL string        `env:"BASE_URL"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

func (c APIConfig) Validate() error {
	if c.Timeout < 0 {
		return errors.New("API_TIMEOUT must not be negative")
	}

	return nil
}

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type SessionConfig struct {
	Store        string        `env:"STORE" envDefault:"memory"`
	TTL          time.Duration `env:"TTL" envDefault:"8h"`
	CookieSecure bool          `env:"COOKIE_SECURE"`
}

func (c SessionConfig) Validate() error {
	if c.Store != SessionStoreMemory && c.Store != SessionStoreRedis {
		return fmt.Errorf("SESSION_STORE must be %q or %q", SessionStoreMemory, SessionStoreRedis)
	}
	if c.TTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}

	return nil
}

type RedisConfig struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
}

func (c RedisConfig) Validate() error {
	if c.Host == "" {
		return errors.New("REDIS_HOST is required")
	}
	if c.Port == 0 {
		return errors.New("REDIS_PORT is required")
	}

	return nil
}

// PostHogConfig is optional; analytics are disabled without an API key.
type PostHogConfig struct {
	APIKey string `env:"API_KEY"`
	Host   string `env:"HOST" envDefault:"https://us.i.posthog.com"`
}

func (c PostHogConfig) Enabled() bool {
	return c.APIKey != ""
}

const (
	OTelExporterNone   = "none"
	OTelExporterStdout = "stdout"
	OTelExporterOTLP   = "otlp"

	OTelProtocolHTTP = "http"
	OTelProtocolGRPC = "grpc"
)

type OTelConfig struct {
	Exporter    string `env:"EXPORTER" envDefault:"none"`
	Protocol    string `env:"PROTOCOL" envDefault:"http"`
	ServiceName string `env:"SERVICE_NAME"`
	Logs        bool   `env:"LOGS"`
}

func (c OTelConfig) Validate() error {
	switch c.Exporter {
	case OTelExporterNone, OTelExporterStdout, OTelExporterOTLP:
	default:
		return fmt.Errorf("OTEL_EXPORTER must be one of %q, %q, %q", OTelExporterNone, OTelExporterStdout, OTelExporterOTLP)
	}

	if c.Protocol != OTelProtocolHTTP && c.Protocol != OTelProtocolGRPC {
		return fmt.Errorf("OTEL_PROTOCOL must be %q or %q", OTelProtocolHTTP, OTelProtocolGRPC)
	}

	return nil
}

// DevAPIConfig is the configuration of the development API.
type DevAPIConfig struct {
	Port           int      `env:"PORT" envDefault:"5000"`
	MaxStatements  int      `env:"MAX_STATEMENTS" envDefault:"15"`
	LessonsFile    string   `env:"LESSONS_FILE"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*"`

	OTel OTelConfig `envPrefix:"OTEL_"`
}

func (c DevAPIConfig) Validate() error {
	var result *multierror.Error

	if c.Port <= 0 {
		result = multierror.Append(result, errors.New("PORT must be positive"))
	}
	if c.MaxStatements <= 0 {
		result = multierror.Append(result, errors.New("MAX_STATEMENTS must be positive"))
	}
	if err := c.OTel.Validate(); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

// CLIConfig is the configuration of the terminal client.
type CLIConfig struct {
	API APIConfig `envPrefix:"API_"`
}

func (c CLIConfig) Validate() error {
	return c.API.Validate()
}

// ResolvedAPI returns the API configuration, talking to the development
// API on localhost unless API_BASE_URL is set.
func (c CLIConfig) ResolvedAPI() APIConfig {
	api := c.API
	api.BaseURL = strings.TrimSuffix(api.BaseURL, "/")
	if api.BaseURL == "" {
		api.BaseURL = DevelopmentAPIBaseURL
	}

	return api
}
