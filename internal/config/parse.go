package config

import "github.com/caarlos0/env/v11"

// LoadWeb parses the web front end configuration from the environment.
func LoadWeb() (WebConfig, error) {
	var cfg WebConfig

	if err := env.Parse(&cfg); err != nil {
		return WebConfig{}, err
	}

	return cfg, nil
}

// LoadDevAPI parses the development API configuration from the environment.
func LoadDevAPI() (DevAPIConfig, error) {
	var cfg DevAPIConfig

	if err := env.Parse(&cfg); err != nil {
		return DevAPIConfig{}, err
	}

	return cfg, nil
}

// LoadCLI parses the terminal client configuration from the environment.
func LoadCLI() (CLIConfig, error) {
	var cfg CLIConfig

	if err := env.Parse(&cfg); err != nil {
		return CLIConfig{}, err
	}

	return cfg, nil
}
