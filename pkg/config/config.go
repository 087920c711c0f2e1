package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for survey-engine.
// Configuration can come from a YAML file (config.yaml) or environment
// variables; environment variables override YAML values. Secrets (API keys)
// must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Dataset source configuration
	Dataset DatasetConfig `yaml:"dataset"`

	// Question-resolution tuning
	Resolver ResolverConfig `yaml:"resolver"`

	// Optional chat-completion endpoint for LLM-backed condition extraction
	LLM LLMConfig `yaml:"llm"`
}

// DatasetConfig points at the survey CSV and its column declaration table.
// Empty paths fall back to the built-in demo dataset and default columns.
type DatasetConfig struct {
	CSVPath     string `yaml:"csv_path" env:"DATASET_CSV_PATH" env-default:""`
	ColumnsPath string `yaml:"columns_path" env:"DATASET_COLUMNS_PATH" env-default:""`
}

// ResolverConfig tunes fuzzy column resolution.
type ResolverConfig struct {
	// Threshold is the minimum similarity score in (0, 1] for a question
	// fragment to resolve to a column.
	Threshold float64 `yaml:"threshold" env:"RESOLVER_THRESHOLD" env-default:"0.55"`
}

// LLMConfig holds the optional OpenAI-compatible endpoint used to translate
// questions into structured conditions directly.
type LLMConfig struct {
	Endpoint string `yaml:"endpoint" env:"LLM_ENDPOINT" env-default:""`
	Model    string `yaml:"model" env:"LLM_MODEL" env-default:""`
	APIKey   string `yaml:"-" env:"LLM_API_KEY"` // Secret - not in YAML
}

// IsAvailable returns true if the LLM extractor is configured.
func (c *LLMConfig) IsAvailable() bool {
	return c.Endpoint != "" && c.Model != ""
}

// Load reads configuration from config.yaml with environment variable
// overrides. When no config.yaml exists, environment variables alone are
// used. The version parameter is injected at build time.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if cfg.Resolver.Threshold <= 0 || cfg.Resolver.Threshold > 1 {
		return nil, fmt.Errorf("resolver threshold %v outside (0, 1]", cfg.Resolver.Threshold)
	}

	return cfg, nil
}
