package server

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-insights/internal/quote"
	"github.com/rxtech-lab/argo-insights/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds all server configuration.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port int `yaml:"port" json:"port" validate:"required,min=1,max=65535" jsonschema:"title=Port,description=TCP port the HTTP server listens on,default=8000"`
	// DatabasePath is the DuckDB database file backing the document store.
	DatabasePath string `yaml:"database_path" json:"database_path" validate:"required" jsonschema:"title=Database Path,description=DuckDB database file backing the document store"`
	// QuoteBaseURL is the base URL of the CSV quote endpoint.
	QuoteBaseURL string `yaml:"quote_base_url" json:"quote_base_url" validate:"required,url" jsonschema:"title=Quote Base URL,description=Base URL of the daily CSV quote endpoint"`
	// FetchTimeoutSeconds bounds a single upstream history fetch.
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds" json:"fetch_timeout_seconds" validate:"required,min=1" jsonschema:"title=Fetch Timeout Seconds,description=Timeout for a single upstream fetch in seconds,default=10"`
}

// DefaultConfig returns the configuration used when no file or environment
// overrides are present.
func DefaultConfig() Config {
	return Config{
		Port:                8000,
		DatabasePath:        "data/insights.db",
		QuoteBaseURL:        quote.DefaultBaseURL,
		FetchTimeoutSeconds: 10,
	}
}

// LoadConfig builds the configuration from defaults, an optional YAML file,
// and environment variable overrides (PORT, DATABASE_PATH, QUOTE_BASE_URL),
// in that order of precedence.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config file %s", path)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, errors.Newf(errors.ErrCodeInvalidConfiguration, "invalid PORT value %q", v)
		}

		cfg.Port = port
	}

	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}

	if v := os.Getenv("QUOTE_BASE_URL"); v != "" {
		cfg.QuoteBaseURL = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid server configuration", err)
	}

	return nil
}

// FetchTimeout returns the upstream fetch timeout as a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// GenerateSchema generates a JSON schema for the server configuration.
func (c Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: false,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
	}

	schema := reflector.Reflect(&c)
	if schema == nil {
		return nil, fmt.Errorf("failed to reflect config schema")
	}

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the server
// configuration.
func (c Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
