package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config represents the application configuration structure
type Config struct {
	Environment string `split_words:"true" default:"dev"`

	PostgresDSN string `split_words:"true" required:"true"`

	APIListenAddress string `split_words:"true" default:":8080"`
	APIBaseAddress   string `split_words:"true" default:"http://localhost:8080"`
	APIAllowedOrigin string `split_words:"true" default:"*"`

	OIDCProviderURL  string `envconfig:"OIDC_PROVIDER_URL" required:"true"`
	OIDCClientID     string `envconfig:"OIDC_CLIENT_ID" required:"true"`
	OIDCClientSecret string `envconfig:"OIDC_CLIENT_SECRET" required:"true"`

	CSRFSecret string `split_words:"true" required:"true"`

	SessionLifetime int64 `split_words:"true" default:"43200"`
}

// LoadFromEnv loads a new configuration structure using environment variables and an optional .env file
func LoadFromEnv() (*Config, error) {
	// Load a .env file if it exists
	_ = godotenv.Overload()

	// Load a new configuration structure using environment variables
	config := new(Config)
	if err := envconfig.Process("bo", config); err != nil {
		return nil, err
	}
	return config, nil
}

// IsEnvProduction returns whether the application runs in production mode
func (config *Config) IsEnvProduction() bool {
	return strings.ToLower(config.Environment) == "prod" || strings.ToLower(config.Environment) == "production"
}

// IsAPISecure returns whether the back office API is served via HTTPS
func (config *Config) IsAPISecure() bool {
	return strings.HasPrefix(config.APIBaseAddress, "https://")
}
