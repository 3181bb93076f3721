package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/rrapi/internal/errors"
)

// EnvPrefix is prepended to every environment variable name read by Load.
const EnvPrefix = "REPORT_RESULTS_"

// Names of the two variables the program cannot run without.
const (
	EndpointEnv = EnvPrefix + "API_ENDPOINT"
	APIKeyEnv   = EnvPrefix + "API_KEY"
)

// Defaults
const (
	DefaultReportNumber = "1206489210"
	DefaultQueryFile    = "graphql_query/report_results.graphql"
	DefaultTimeout      = 30 * time.Second
	DefaultLogLevel     = "info"
	DotEnvFile          = ".env"
)

// Config represents the complete configuration for rrapi.
//
// Endpoint and APIKey are only ever read from the environment (or a .env
// file); the YAML file holds non-secret settings.
type Config struct {
	Endpoint            string        `env:"API_ENDPOINT" yaml:"-"`
	APIKey              string        `env:"API_KEY" yaml:"-"`
	QueryFile           string        `env:"QUERY_FILE" yaml:"query_file"`
	DefaultReportNumber string        `env:"DEFAULT_REPORT_NUMBER" yaml:"default_report_number"`
	Timeout             time.Duration `env:"TIMEOUT" yaml:"timeout"`
	LogLevel            string        `env:"LOG_LEVEL" yaml:"log_level"`

	// FilePath points at the YAML file. When empty, FindConfigFile is used.
	FilePath string `env:"CONFIG" yaml:"-"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		QueryFile:           DefaultQueryFile,
		DefaultReportNumber: DefaultReportNumber,
		Timeout:             DefaultTimeout,
		LogLevel:            DefaultLogLevel,
	}
}

// Load reads .env, the environment and the optional YAML file, merges them
// over the defaults and validates the result. Environment values take
// precedence over the file, which takes precedence over defaults.
func Load() (*Config, error) {
	return newBuilder().
		withDotEnv(DotEnvFile).
		withEnv().
		withFile().
		withDefaults().
		build()
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".rrapi.yml", ".rrapi.yaml", "rrapi.yml", "rrapi.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks that the endpoint and API key are present and usable.
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Endpoint) == "" {
		missing = append(missing, EndpointEnv)
	}
	if strings.TrimSpace(c.APIKey) == "" {
		missing = append(missing, APIKeyEnv)
	}
	if len(missing) > 0 {
		return errors.NewConfigurationError(
			fmt.Sprintf("You must provide environment variables %s and %s (missing: %s)",
				EndpointEnv, APIKeyEnv, strings.Join(missing, ", ")),
			errors.ErrMissingEnv,
		)
	}

	u, err := url.ParseRequestURI(c.Endpoint)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.NewConfigurationError(
			fmt.Sprintf("%s is not an http(s) URL: %q", EndpointEnv, c.Endpoint), err)
	}

	if c.Timeout <= 0 {
		return errors.NewConfigurationError(
			fmt.Sprintf("timeout must be positive, got %s", c.Timeout), nil)
	}

	return nil
}

type builder struct {
	configs []*Config
	err     error
}

func newBuilder() *builder {
	return &builder{configs: make([]*Config, 0, 3)}
}

func (b *builder) build() (*Config, error) {
	if b.err != nil {
		return nil, errors.NewConfigurationError("failed to load configuration", b.err)
	}

	cfg := new(Config)
	for _, layer := range b.configs {
		if err := mergo.Merge(cfg, layer); err != nil {
			return nil, errors.NewConfigurationError("failed to merge configuration", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// withDotEnv exports the variables of a .env file into the process
// environment. Variables that are already set are left alone.
func (b *builder) withDotEnv(path string) *builder {
	if err := godotenv.Load(path); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		b.err = stderrors.Join(b.err, fmt.Errorf("error loading %s: %w", path, err))
	}
	return b
}

func (b *builder) withEnv() *builder {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		b.err = stderrors.Join(b.err, fmt.Errorf("error getting env configs: %w", err))
		return b
	}
	b.configs = append(b.configs, cfg)
	return b
}

func (b *builder) withFile() *builder {
	var path string
	for _, cfg := range b.configs {
		if cfg.FilePath != "" {
			path = cfg.FilePath
		}
	}
	if path == "" {
		path = FindConfigFile()
	}
	if path == "" {
		return b
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		b.err = stderrors.Join(b.err, err)
		return b
	}
	cfg.FilePath = path
	b.configs = append(b.configs, cfg)
	return b
}

func (b *builder) withDefaults() *builder {
	b.configs = append(b.configs, NewConfig())
	return b
}
